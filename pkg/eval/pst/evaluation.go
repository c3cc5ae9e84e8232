package eval

import (
	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

const (
	minorPhase = 1
	rookPhase  = 2
	queenPhase = 4
	totalPhase = 2 * (4*minorPhase + 2*rookPhase + queenPhase)
)

const (
	darkSquares = uint64(0xAA55AA55AA55AA55)
)

// EvaluationService is a tapered material and piece-square evaluation.
type EvaluationService struct {
	Weights
	pieceCount [2][PIECE_NB]int
	force      [2]int
}

func NewEvaluationService() *EvaluationService {
	var es = &EvaluationService{}
	es.Weights.init()
	return es
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var (
		x     uint64
		sq    int
		piece int
		s     Score
	)

	e.pieceCount = [2][PIECE_NB]int{}

	for side := SideWhite; side <= SideBlack; side++ {
		for x = p.Colours[side]; x != 0; x &= x - 1 {
			sq = FirstOne(x)
			piece = p.WhatPiece(sq)
			s += e.PST[side][piece][sq]
			e.pieceCount[side][piece]++
		}
	}

	for side := SideWhite; side <= SideBlack; side++ {
		e.force[side] = minorPhase*(e.pieceCount[side][Knight]+e.pieceCount[side][Bishop]) +
			rookPhase*e.pieceCount[side][Rook] + queenPhase*e.pieceCount[side][Queen]
	}

	if e.pieceCount[SideWhite][Bishop] >= 2 {
		s += e.BishopPairMaterial
	}
	if e.pieceCount[SideBlack][Bishop] >= 2 {
		s -= e.BishopPairMaterial
	}

	// mix score

	var phase = Min(totalPhase, e.force[SideWhite]+e.force[SideBlack])
	var result = (s.Mg()*phase + s.Eg()*(totalPhase-phase)) / totalPhase

	var ocb = e.force[SideWhite] == minorPhase &&
		e.force[SideBlack] == minorPhase &&
		(p.Pieces[Bishop]&darkSquares) != 0 &&
		(p.Pieces[Bishop] & ^darkSquares) != 0

	if result > 0 {
		result = result * computeFactor(e, SideWhite, ocb) / scaleNormal
	} else {
		result = result * computeFactor(e, SideBlack, ocb) / scaleNormal
	}

	if p.Side == SideBlack {
		result = -result
	}

	return result + e.Tempo
}

const (
	scaleDraw   = 0
	scaleHard   = 1
	scaleNormal = 2
)

func computeFactor(e *EvaluationService, side int, ocb bool) int {
	if e.force[side] >= queenPhase+rookPhase {
		return scaleNormal
	}
	if e.pieceCount[side][Pawn] == 0 {
		if e.force[side] <= minorPhase {
			return scaleDraw
		}
		if e.force[side] == 2*minorPhase && e.pieceCount[side][Knight] == 2 && e.pieceCount[side^1][Pawn] == 0 {
			return scaleHard
		}
		if e.force[side]-e.force[side^1] <= minorPhase {
			return scaleHard
		}
	} else if e.pieceCount[side][Pawn] == 1 {
		if e.force[side] <= minorPhase && e.pieceCount[side^1][Knight]+e.pieceCount[side^1][Bishop] != 0 {
			return scaleHard
		}
		if e.force[side] == e.force[side^1] && e.pieceCount[side^1][Knight]+e.pieceCount[side^1][Bishop] != 0 {
			return scaleHard
		}
	} else if ocb && e.pieceCount[side][Pawn]-e.pieceCount[side^1][Pawn] <= 2 {
		return scaleHard
	}
	return scaleNormal
}
