package engine

import (
	"errors"

	"tictactoe/game"
)

var (
	ErrGameOver     = errors.New("game is over - no moves allowed")
	ErrAgentPending = errors.New("agent has not replied yet")
	ErrNotPending   = errors.New("no agent reply pending")
)

// Turn reports what happened in one call to the session.
type Turn struct {
	Human   int // -1 when the call only resumed the agent
	Agent   int // -1 when the agent did not move
	Outcome game.Outcome
}
