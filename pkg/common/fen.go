package common

import (
	"fmt"
	"strconv"
	"strings"
)

func NewPositionFromFEN(fen string) (*Position, error) {
	var tokens = strings.Fields(fen)
	if len(tokens) < 4 || len(tokens) > 6 {
		return nil, fmt.Errorf("%w: expected 4 to 6 fields: %q", ErrMalformedPosition, fen)
	}

	var p = newPosition()

	var ranks = strings.Split(tokens[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks: %q", ErrMalformedPosition, tokens[0])
	}
	for i, sRank := range ranks {
		var rank = Rank8 - i
		var file = FileA
		for j := 0; j < len(sRank); j++ {
			var ch = sRank[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			var piece, side = parsePiece(ch)
			if piece == Empty {
				return nil, fmt.Errorf("%w: bad piece %q", ErrMalformedPosition, ch)
			}
			if file > FileH {
				return nil, fmt.Errorf("%w: rank %v is too long", ErrMalformedPosition, rank+1)
			}
			p.addPiece(piece, side, MakeSquare(file, rank))
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %v has %v squares", ErrMalformedPosition, rank+1, file)
		}
	}

	switch tokens[1] {
	case "w":
		p.Side = SideWhite
	case "b":
		p.Side = SideBlack
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrMalformedPosition, tokens[1])
	}

	if tokens[2] != "-" {
		for j := 0; j < len(tokens[2]); j++ {
			var i = strings.IndexByte("KQkq", tokens[2][j])
			if i < 0 {
				return nil, fmt.Errorf("%w: bad castling rights %q", ErrMalformedPosition, tokens[2])
			}
			p.CastleRights |= 1 << uint(i)
		}
	}

	var ep, ok = ParseSquare(tokens[3])
	if !ok {
		return nil, fmt.Errorf("%w: bad en passant square %q", ErrMalformedPosition, tokens[3])
	}
	p.EpSquare = ep

	if len(tokens) > 4 {
		var rule50, err = strconv.Atoi(tokens[4])
		if err != nil || rule50 < 0 {
			return nil, fmt.Errorf("%w: bad half-move clock %q", ErrMalformedPosition, tokens[4])
		}
		p.Rule50 = rule50
	}
	if len(tokens) > 5 {
		var moveNumber, err = strconv.Atoi(tokens[5])
		if err != nil || moveNumber < 1 {
			return nil, fmt.Errorf("%w: bad move number %q", ErrMalformedPosition, tokens[5])
		}
		p.MoveNumber = moveNumber
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	p.Key = p.ComputeKey()
	p.Checkers = p.computeCheckers()
	return p, nil
}

func (p *Position) validate() error {
	for side := SideWhite; side <= SideBlack; side++ {
		if PopCount(p.Pieces[King]&p.Colours[side]) != 1 {
			return fmt.Errorf("%w: side %v must have exactly one king", ErrMalformedPosition, side)
		}
	}
	if p.Pieces[Pawn]&(Rank1Mask|Rank8Mask) != 0 {
		return fmt.Errorf("%w: pawn on back rank", ErrMalformedPosition)
	}
	for i := range castleRules {
		var rule = &castleRules[i]
		if p.CastleRights&rule.right == 0 {
			continue
		}
		if p.board[rule.kingFrom] != makeColouredPiece(King, rule.side) ||
			p.board[rule.rookFrom] != makeColouredPiece(Rook, rule.side) {
			return fmt.Errorf("%w: castling rights without king and rook", ErrMalformedPosition)
		}
	}
	if p.EpSquare != SquareNone {
		var rule = &pawnRules[p.Side^1]
		var pawnSq = p.EpSquare + rule.push
		if Rank(p.EpSquare) != rule.startRank+rule.push/8 ||
			p.board[pawnSq] != makeColouredPiece(Pawn, p.Side^1) ||
			p.board[p.EpSquare] != Empty ||
			p.board[p.EpSquare-rule.push] != Empty {
			return fmt.Errorf("%w: bad en passant square %v", ErrMalformedPosition, SquareName(p.EpSquare))
		}
	}
	if p.IsAttacked(p.kings[p.Side^1], p.Side) {
		return fmt.Errorf("%w: side not to move is in check", ErrMalformedPosition)
	}
	return nil
}

func (p *Position) String() string {
	var sb strings.Builder

	for rank := Rank8; rank >= Rank1; rank-- {
		var emptyCount = 0
		for file := FileA; file <= FileH; file++ {
			var piece, side = p.PieceOn(MakeSquare(file, rank))
			if piece == Empty {
				emptyCount++
				continue
			}
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(pieceToChar(piece, side))
		}
		if emptyCount != 0 {
			sb.WriteString(strconv.Itoa(emptyCount))
		}
		if rank != Rank1 {
			sb.WriteString("/")
		}
	}
	sb.WriteString(" ")

	if p.Side == SideWhite {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}
	sb.WriteString(" ")

	if p.CastleRights == 0 {
		sb.WriteString("-")
	} else {
		for i := 0; i < 4; i++ {
			if p.CastleRights&(1<<uint(i)) != 0 {
				sb.WriteByte("KQkq"[i])
			}
		}
	}
	sb.WriteString(" ")

	sb.WriteString(SquareName(p.EpSquare))
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(p.Rule50))
	sb.WriteString(" ")

	sb.WriteString(strconv.Itoa(p.MoveNumber))

	return sb.String()
}
