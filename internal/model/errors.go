package model

import "errors"

// The engine reports rejected moves as a false return. These sentinels are
// for callers that have to turn that into an error.
var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrIllegalMove   = errors.New("illegal move")
)
