package common

type pawnRule struct {
	push          int
	startRank     int
	promotionRank int
}

var pawnRules = [2]pawnRule{
	SideWhite: {push: 8, startRank: Rank2, promotionRank: Rank8},
	SideBlack: {push: -8, startRank: Rank7, promotionRank: Rank1},
}

// GenerateMoves adds all pseudo-legal moves to ml.
func (p *Position) GenerateMoves(ml *MoveList) {
	ml.Clear()
	var us = p.Side
	var own = p.Colours[us]
	p.generatePawnMoves(ml, false)
	p.generatePieceMoves(ml, ^own)
	p.generateCastles(ml)
}

// GenerateCaptures adds captures and queen promotions to ml.
func (p *Position) GenerateCaptures(ml *MoveList) {
	ml.Clear()
	p.generatePawnMoves(ml, true)
	p.generatePieceMoves(ml, p.Colours[p.Side^1])
}

func (p *Position) GenerateLegalMoves() []Move {
	var ml MoveList
	p.GenerateMoves(&ml)
	var result []Move
	for i := 0; i < ml.Count; i++ {
		var mv = ml.Items[i].Move
		if p.MakeMove(mv) {
			result = append(result, mv)
		}
		p.UnmakeMove()
	}
	return result
}

func (p *Position) HasLegalMove() bool {
	var ml MoveList
	p.GenerateMoves(&ml)
	for i := 0; i < ml.Count; i++ {
		var legal = p.MakeMove(ml.Items[i].Move)
		p.UnmakeMove()
		if legal {
			return true
		}
	}
	return false
}

func (p *Position) generatePieceMoves(ml *MoveList, target uint64) {
	var occ = p.AllPieces()
	var own = p.Colours[p.Side]
	for piece := Knight; piece <= King; piece++ {
		for x := p.Pieces[piece] & own; x != 0; x &= x - 1 {
			var from = FirstOne(x)
			for y := PieceAttacks(piece, from, occ) & target; y != 0; y &= y - 1 {
				var to = FirstOne(y)
				ml.Add(makeMove(from, to, piece, p.WhatPiece(to)))
			}
		}
	}
}

func addPromotions(ml *MoveList, from, to, captured int, queenOnly bool) {
	ml.Add(makePawnMove(from, to, captured, Queen))
	if queenOnly {
		return
	}
	for promotion := Rook; promotion >= Knight; promotion-- {
		ml.Add(makePawnMove(from, to, captured, promotion))
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, tactical bool) {
	var us = p.Side
	var rule = &pawnRules[us]
	var occ = p.AllPieces()
	var enemy = p.Colours[us^1]
	for x := p.Pieces[Pawn] & p.Colours[us]; x != 0; x &= x - 1 {
		var from = FirstOne(x)
		var to = from + rule.push
		var promotion = Rank(to) == rule.promotionRank

		if occ&SquareMask[to] == 0 {
			if promotion {
				addPromotions(ml, from, to, Empty, tactical)
			} else if !tactical {
				ml.Add(makePawnMove(from, to, Empty, Empty))
				var to2 = to + rule.push
				if Rank(from) == rule.startRank && occ&SquareMask[to2] == 0 {
					ml.Add(makeSpecialMove(from, to2, Pawn, Empty, FlagDoublePush))
				}
			}
		}

		var attacks = PawnAttacks(from, us)
		for y := attacks & enemy; y != 0; y &= y - 1 {
			var to = FirstOne(y)
			if promotion {
				addPromotions(ml, from, to, p.WhatPiece(to), tactical)
			} else {
				ml.Add(makePawnMove(from, to, p.WhatPiece(to), Empty))
			}
		}
		if p.EpSquare != SquareNone && attacks&SquareMask[p.EpSquare] != 0 {
			ml.Add(makeSpecialMove(from, p.EpSquare, Pawn, Pawn, FlagEnPassant))
		}
	}
}

func (p *Position) generateCastles(ml *MoveList) {
	if p.CastleRights == 0 || p.IsCheck() {
		return
	}
	var occ = p.AllPieces()
	var them = p.Side ^ 1
	for i := range castleRules {
		var rule = &castleRules[i]
		if rule.side != p.Side || p.CastleRights&rule.right == 0 || occ&rule.empty != 0 {
			continue
		}
		if p.IsAttacked(rule.safe[0], them) || p.IsAttacked(rule.safe[1], them) {
			continue
		}
		ml.Add(makeSpecialMove(rule.kingFrom, rule.kingTo, King, Empty, FlagCastle))
	}
}
