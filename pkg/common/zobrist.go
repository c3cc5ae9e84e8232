package common

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [2][PIECE_NB][64]uint64
)

func PieceSquareKey(piece, side, square int) uint64 {
	return pieceSquareKey[side][piece][square]
}

// Keys must not change between runs: tests and saved positions compare them.
func initKeys() {
	var seed [32]byte
	copy(seed[:], "chesssearch zobrist keys")
	var r = frand.NewCustom(seed[:], 1024, 20)
	var next = func() uint64 {
		var buf [8]byte
		r.Read(buf[:])
		return binary.LittleEndian.Uint64(buf[:])
	}

	sideKey = next()
	for i := range enpassantKey {
		enpassantKey[i] = next()
	}
	for side := range pieceSquareKey {
		for piece := Pawn; piece <= King; piece++ {
			for sq := range pieceSquareKey[side][piece] {
				pieceSquareKey[side][piece][sq] = next()
			}
		}
	}

	var castle [4]uint64
	for i := range castle {
		castle[i] = next()
	}
	for i := range castlingKey {
		for j := 0; j < 4; j++ {
			if (i & (1 << uint(j))) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

// ComputeKey recounts the hash signature from scratch.
func (p *Position) ComputeKey() uint64 {
	var result = uint64(0)
	if p.Side == SideBlack {
		result ^= sideKey
	}
	result ^= castlingKey[p.CastleRights]
	if p.EpSquare != SquareNone {
		result ^= enpassantKey[File(p.EpSquare)]
	}
	for sq := 0; sq < 64; sq++ {
		var piece, side = p.PieceOn(sq)
		if piece != Empty {
			result ^= PieceSquareKey(piece, side, sq)
		}
	}
	return result
}

func (p *Position) ComputePawnKey() uint64 {
	var result = uint64(0)
	for side := SideWhite; side <= SideBlack; side++ {
		for x := p.Pieces[Pawn] & p.Colours[side]; x != 0; x &= x - 1 {
			result ^= PieceSquareKey(Pawn, side, FirstOne(x))
		}
	}
	return result
}
