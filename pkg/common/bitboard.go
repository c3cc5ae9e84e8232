package common

import "math/bits"

const (
	FileAMask uint64 = 0x0101010101010101 << iota
	FileBMask
	FileCMask
	FileDMask
	FileEMask
	FileFMask
	FileGMask
	FileHMask
)

const (
	Rank1Mask uint64 = 0xFF << (8 * iota)
	Rank2Mask
	Rank3Mask
	Rank4Mask
	Rank5Mask
	Rank6Mask
	Rank7Mask
	Rank8Mask
)

var FileMask = [8]uint64{
	FileAMask, FileBMask, FileCMask, FileDMask, FileEMask, FileFMask, FileGMask, FileHMask,
}

var RankMask = [8]uint64{
	Rank1Mask, Rank2Mask, Rank3Mask, Rank4Mask, Rank5Mask, Rank6Mask, Rank7Mask, Rank8Mask,
}

// Direction vector on the board, file delta and rank delta.
type vector struct {
	df, dr int
}

func (v vector) positive() bool {
	return v.dr*8+v.df > 0
}

// Ray directions. The index of a direction addresses rays.
var directions = [8]vector{
	{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

type pieceMovement struct {
	vectors []vector
	sliding bool
}

var pieceMovements = [PIECE_NB]pieceMovement{
	Knight: {
		vectors: []vector{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}},
	},
	Bishop: {
		vectors: []vector{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}},
		sliding: true,
	},
	Rook: {
		vectors: []vector{{0, 1}, {1, 0}, {0, -1}, {-1, 0}},
		sliding: true,
	},
	Queen: {
		vectors: directions[:],
		sliding: true,
	},
	King: {
		vectors: directions[:],
	},
}

var (
	SquareMask    [64]uint64
	KnightAttacks [64]uint64
	KingAttacks   [64]uint64
	pawnAttacks   [2][64]uint64
	stepAttacks   [PIECE_NB][64]uint64
	rays          [len(directions)][64]uint64
	sliderRays    [PIECE_NB][]int
)

func BitboardString(b uint64) string {
	var s = ""
	for x := b; x != 0; x &= x - 1 {
		sq := FirstOne(x)
		if s != "" {
			s += ","
		}
		s += SquareName(sq)
	}
	return "(" + s + ")"
}

func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

func FirstOne(b uint64) int {
	return bits.TrailingZeros64(b)
}

func LastOne(b uint64) int {
	return 63 - bits.LeadingZeros64(b)
}

func MoreThanOne(value uint64) bool {
	return value != 0 && ((value-1)&value) != 0
}

func Up(b uint64) uint64 {
	return b << 8
}

func Down(b uint64) uint64 {
	return b >> 8
}

func Right(b uint64) uint64 {
	return (b & ^FileHMask) << 1
}

func Left(b uint64) uint64 {
	return (b & ^FileAMask) >> 1
}

func AllPawnAttacks(b uint64, side int) uint64 {
	if side == SideWhite {
		return Up(Left(b) | Right(b))
	}
	return Down(Left(b) | Right(b))
}

// PawnAttacks returns squares attacked by a pawn of side standing on from.
func PawnAttacks(from int, side int) uint64 {
	return pawnAttacks[side][from]
}

func BishopAttacks(from int, occ uint64) uint64 {
	return slideAttacks(Bishop, from, occ)
}

func RookAttacks(from int, occ uint64) uint64 {
	return slideAttacks(Rook, from, occ)
}

func QueenAttacks(from int, occ uint64) uint64 {
	return slideAttacks(Queen, from, occ)
}

// PieceAttacks works for every piece type except pawns.
func PieceAttacks(piece, from int, occ uint64) uint64 {
	if pieceMovements[piece].sliding {
		return slideAttacks(piece, from, occ)
	}
	return stepAttacks[piece][from]
}

// https://www.chessprogramming.org/Classical_Approach
func slideAttacks(piece, from int, occ uint64) uint64 {
	var result uint64
	for _, dir := range sliderRays[piece] {
		var ray = rays[dir][from]
		var blockers = ray & occ
		if blockers != 0 {
			var blocker int
			if directions[dir].positive() {
				blocker = FirstOne(blockers)
			} else {
				blocker = LastOne(blockers)
			}
			ray ^= rays[dir][blocker]
		}
		result |= ray
	}
	return result
}

func shiftSquare(sq int, v vector) (int, bool) {
	var file = File(sq) + v.df
	var rank = Rank(sq) + v.dr
	if file < FileA || file > FileH || rank < Rank1 || rank > Rank8 {
		return SquareNone, false
	}
	return MakeSquare(file, rank), true
}

func directionIndex(v vector) int {
	for i, d := range directions {
		if d == v {
			return i
		}
	}
	panic("unknown direction")
}

func init() {
	for sq := 0; sq < 64; sq++ {
		SquareMask[sq] = uint64(1) << uint(sq)
	}

	for dir, v := range directions {
		for sq := 0; sq < 64; sq++ {
			for to, ok := shiftSquare(sq, v); ok; to, ok = shiftSquare(to, v) {
				rays[dir][sq] |= SquareMask[to]
			}
		}
	}

	for piece := range pieceMovements {
		var pm = &pieceMovements[piece]
		if pm.sliding {
			for _, v := range pm.vectors {
				sliderRays[piece] = append(sliderRays[piece], directionIndex(v))
			}
			continue
		}
		for sq := 0; sq < 64; sq++ {
			for _, v := range pm.vectors {
				if to, ok := shiftSquare(sq, v); ok {
					stepAttacks[piece][sq] |= SquareMask[to]
				}
			}
		}
	}
	KnightAttacks = stepAttacks[Knight]
	KingAttacks = stepAttacks[King]

	for sq := 0; sq < 64; sq++ {
		pawnAttacks[SideWhite][sq] = AllPawnAttacks(SquareMask[sq], SideWhite)
		pawnAttacks[SideBlack][sq] = AllPawnAttacks(SquareMask[sq], SideBlack)
	}
}
