package engine

import (
	. "github.com/ChizhovVadim/chesssearch/pkg/common"
)

var pieceValuesSEE = [PIECE_NB]int{Pawn: 1, Knight: 4, Bishop: 4, Rook: 6, Queen: 12, King: 120}

func seeGEZero(p *Position, move Move) bool {
	return SeeGE(p, move, 0)
}

// based on Ethereal
func SeeGE(pos *Position, move Move, threshold int) bool {
	var from = move.From()
	var to = move.To()
	var movingPiece = move.MovingPiece()
	var capturedPiece = move.CapturedPiece()
	var promotionPiece = move.Promotion()

	var nextVictim = movingPiece
	if promotionPiece != Empty {
		nextVictim = promotionPiece
	}

	var balance = pieceValuesSEE[capturedPiece]
	if promotionPiece != Empty {
		balance += pieceValuesSEE[promotionPiece] - pieceValuesSEE[Pawn]
	}
	balance -= threshold

	if balance < 0 {
		return false
	}

	balance -= pieceValuesSEE[nextVictim]
	if balance >= 0 {
		return true
	}

	var occupied = pos.AllPieces()&^SquareMask[from] | SquareMask[to]
	if move.Flag() == FlagEnPassant {
		occupied &^= SquareMask[to^8]
	}

	var attackers = pos.AttackersTo(to, occupied) & occupied

	var bishops = pos.Pieces[Bishop] | pos.Pieces[Queen]
	var rooks = pos.Pieces[Rook] | pos.Pieces[Queen]

	var side = pos.Side ^ 1

	for {
		var myAttackers = attackers & pos.Colours[side]
		if myAttackers == 0 {
			break
		}

		var attackerType, attackerFrom = getLeastValuableAttacker(pos, myAttackers)

		occupied &^= SquareMask[attackerFrom]

		if attackerType == Pawn || attackerType == Bishop || attackerType == Queen {
			attackers |= BishopAttacks(to, occupied) & bishops
		}
		if attackerType == Rook || attackerType == Queen {
			attackers |= RookAttacks(to, occupied) & rooks
		}

		attackers &= occupied

		side = side ^ 1

		balance = -balance - 1 - pieceValuesSEE[attackerType]
		if balance >= 0 {
			if attackerType == King &&
				(attackers&pos.Colours[side]) != 0 {
				side = side ^ 1
			}
			break
		}
	}

	return side != pos.Side
}

func getLeastValuableAttacker(p *Position, attackers uint64) (attacker, from int) {
	for piece := Pawn; piece <= King; piece++ {
		if p.Pieces[piece]&attackers != 0 {
			return piece, FirstOne(p.Pieces[piece] & attackers)
		}
	}
	return Empty, SquareNone
}
