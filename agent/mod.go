package agent

import "tictactoe/game"

// Policy picks one of the legal cells for a state.
type Policy interface {
	// SelectAction returns a member of legal. It panics when legal is empty.
	SelectAction(state game.StateKey, legal []int) int
}

// Learner is a policy backed by a table of action scores that it updates
// from observed transitions.
type Learner interface {
	Policy
	// Scores returns the 9 action scores for state, seeding the row on first access.
	Scores(state game.StateKey) [game.Cells]float64
	Learn(state game.StateKey, action int, reward float64, next game.StateKey, terminal bool)
	// Size is the number of states seen so far.
	Size() int
}
