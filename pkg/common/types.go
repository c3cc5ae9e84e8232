package common

import "time"

const (
	SideWhite = iota
	SideBlack
)

const (
	Empty = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	PIECE_NB
)

const (
	WhiteKingSide = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

const AllCastleRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide

// No legal chess position has more than 218 moves.
const MaxMoves = 256

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// PieceValues are used for the incremental material score.
var PieceValues = [PIECE_NB]int{Pawn: 100, Knight: 400, Bishop: 400, Rook: 600, Queen: 1200}

type LimitsType struct {
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
	Nodes          int
}

type SearchParams struct {
	Position *Position
	Limits   LimitsType
	Progress func(si SearchInfo)
}

type SearchInfo struct {
	Score    UciScore
	Value    int
	Depth    int
	Nodes    int64
	Time     time.Duration
	MainLine []Move
}

// BestMove returns MoveEmpty when the root position has no legal moves.
func (si *SearchInfo) BestMove() Move {
	if len(si.MainLine) == 0 {
		return MoveEmpty
	}
	return si.MainLine[0]
}

type UciScore struct {
	Centipawns int
	Mate       int
}
