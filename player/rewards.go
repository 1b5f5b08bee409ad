package player

import "tictactoe/game"

// Rewards is the reward schedule shared by self-play and interactive play.
type Rewards struct {
	AgentWin          float64
	HumanWin          float64
	DrawAfterAgent    float64 // The agent's own move filled the board
	DrawAfterOpponent float64 // The opponent's reply filled the board
	Step              float64 // Any non-terminal transition
}

// StandardRewards favours wins, punishes losses harder than it rewards wins,
// and only pays for a draw the agent completed itself.
var StandardRewards = Rewards{
	AgentWin:          1.0,
	HumanWin:          -1.5,
	DrawAfterAgent:    0.2,
	DrawAfterOpponent: 0.0,
	Step:              0.0,
}

// AfterAgent is the reward for the board right after the agent moved.
func (r Rewards) AfterAgent(outcome game.Outcome) float64 {
	switch outcome {
	case game.WonAgent:
		return r.AgentWin
	case game.WonHuman:
		return r.HumanWin
	case game.Drawn:
		return r.DrawAfterAgent
	}
	return r.Step
}

// AfterOpponent is the reward for the board right after the opponent replied.
func (r Rewards) AfterOpponent(outcome game.Outcome) float64 {
	switch outcome {
	case game.WonHuman:
		return r.HumanWin
	case game.Drawn:
		return r.DrawAfterOpponent
	}
	return r.Step
}
