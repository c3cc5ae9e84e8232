package common

import (
	"strings"

	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](l, r T) T {
	if l < r {
		return l
	}
	return r
}

func Max[T constraints.Ordered](l, r T) T {
	if l > r {
		return l
	}
	return r
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func AbsDelta[T constraints.Signed](x, y T) T {
	if x > y {
		return x - y
	}
	return y - x
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}

const pieceNames = "pnbrqk"

// parsePiece returns Empty for an unknown letter.
func parsePiece(ch byte) (piece, side int) {
	var i = strings.IndexByte(pieceNames, ch)
	if i >= 0 {
		return i + Pawn, SideBlack
	}
	i = strings.IndexByte(strings.ToUpper(pieceNames), ch)
	if i >= 0 {
		return i + Pawn, SideWhite
	}
	return Empty, SideWhite
}

func pieceToChar(piece, side int) byte {
	var ch = pieceNames[piece-Pawn]
	if side == SideWhite {
		ch -= 'a' - 'A'
	}
	return ch
}
