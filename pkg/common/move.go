package common

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Move packs from (6 bits), to (6), moving piece (3), captured piece (3),
// promotion (3) and a special flag (2).
type Move int32

const MoveEmpty = Move(0)

const (
	FlagNone = iota
	FlagDoublePush
	FlagEnPassant
	FlagCastle
)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15))
}

func makePawnMove(from, to, capturedPiece, promotion int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (capturedPiece << 15) ^ (promotion << 18))
}

func makeSpecialMove(from, to, movingPiece, capturedPiece, flag int) Move {
	return makeMove(from, to, movingPiece, capturedPiece) ^ Move(flag<<21)
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) Flag() int {
	return int((m >> 21) & 3)
}

func (m Move) IsCaptureOrPromotion() bool {
	return m.CapturedPiece() != Empty || m.Promotion() != Empty
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string(pieceNames[m.Promotion()-Pawn])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// ParseMoveLAN parses coordinate notation (e2e4, e7e8q) and finds it among the legal moves of p.
func ParseMoveLAN(p *Position, lan string) (Move, error) {
	var from, to, promotion, err = parseLAN(lan)
	if err != nil {
		return MoveEmpty, err
	}
	var ml MoveList
	p.GenerateMoves(&ml)
	for i := 0; i < ml.Count; i++ {
		var mv = ml.Items[i].Move
		if mv.From() != from || mv.To() != to || mv.Promotion() != promotion {
			continue
		}
		var legal = p.MakeMove(mv)
		p.UnmakeMove()
		if !legal {
			break
		}
		return mv, nil
	}
	return MoveEmpty, fmt.Errorf("%w: %v in %v", ErrIllegalMove, lan, p)
}

func parseLAN(lan string) (from, to, promotion int, err error) {
	lan = strings.ToLower(lan)
	if len(lan) != 4 && len(lan) != 5 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedMove, lan)
	}
	var ok1, ok2 bool
	from, ok1 = ParseSquare(lan[0:2])
	to, ok2 = ParseSquare(lan[2:4])
	if !ok1 || !ok2 || from == SquareNone || to == SquareNone {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedMove, lan)
	}
	promotion = Empty
	if len(lan) == 5 {
		var i = strings.IndexByte("nbrq", lan[4])
		if i < 0 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedMove, lan)
		}
		promotion = Knight + i
	}
	return from, to, promotion, nil
}

// MakeMoveLAN plays a validated move. The position is unchanged on error.
func (p *Position) MakeMoveLAN(lan string) error {
	var mv, err = ParseMoveLAN(p, lan)
	if err != nil {
		return err
	}
	p.MakeMove(mv)
	return nil
}

func MovesToString(moves []Move) string {
	return strings.Join(lo.Map(moves, func(mv Move, _ int) string {
		return mv.String()
	}), " ")
}
