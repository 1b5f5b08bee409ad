package game

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is matched by every *IllegalMoveError.
var ErrIllegalMove = errors.New("illegal move")

// IllegalMoveError is returned by Board.Play when the move breaks the rules.
// Callers are expected to consult LegalMoves first; this is a contract
// violation rather than a game event.
type IllegalMoveError struct {
	Index  int
	Mark   Mark
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %s at cell %d: %s", e.Mark, e.Index, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}
