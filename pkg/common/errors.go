package common

import "errors"

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrMalformedMove     = errors.New("malformed move")
	ErrMalformedPosition = errors.New("malformed position")

	// ErrMoveListOverflow is raised with panic when a node produces more than MaxMoves moves.
	ErrMoveListOverflow = errors.New("move list overflow")
)
