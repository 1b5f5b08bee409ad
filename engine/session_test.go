package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"tictactoe/agent"
	"tictactoe/game"
)

type transition struct {
	state    game.StateKey
	action   int
	reward   float64
	next     game.StateKey
	terminal bool
}

type scriptedLearner struct {
	*agent.QLearning
	script  []int
	learned []transition
}

func newScriptedLearner(script ...int) *scriptedLearner {
	return &scriptedLearner{QLearning: agent.NewQLearning(agent.WithSeed(1)), script: script}
}

func (s *scriptedLearner) SelectAction(state game.StateKey, legal []int) int {
	if len(s.script) == 0 {
		return s.QLearning.SelectAction(state, legal)
	}
	m := s.script[0]
	s.script = s.script[1:]
	return m
}

func (s *scriptedLearner) Learn(state game.StateKey, action int, reward float64, next game.StateKey, terminal bool) {
	s.learned = append(s.learned, transition{state, action, reward, next, terminal})
	s.QLearning.Learn(state, action, reward, next, terminal)
}

func boardOf(humanCells, agentCells []int) game.Board {
	var cells [game.Cells]game.Mark
	for _, c := range humanCells {
		cells[c] = game.Human
	}
	for _, c := range agentCells {
		cells[c] = game.Agent
	}
	return game.NewBoard(cells)
}

func newTestSession(learner agent.Learner, options ...Option) *Session {
	options = append([]Option{WithDelay(0), WithLogger(zerolog.Nop())}, options...)
	return NewSession(learner, options...)
}

func playAll(t *testing.T, s *Session, cells ...int) Turn {
	t.Helper()
	var turn Turn
	for _, c := range cells {
		var err error
		turn, err = s.PlayHuman(context.Background(), c)
		require.NoError(t, err)
	}
	return turn
}

func TestHumanWinPenalisesTheHumanCell(t *testing.T) {
	learner := newScriptedLearner(3, 4)
	s := newTestSession(learner)

	turn := playAll(t, s, 0, 1, 2)
	require.Equal(t, Turn{Human: 2, Agent: -1, Outcome: game.WonHuman}, turn)
	require.Equal(t, game.WonHuman, s.Outcome())

	require.Len(t, learner.learned, 3)
	require.Equal(t, transition{
		boardOf([]int{0, 1}, []int{3, 4}).Key(), 2, -1.5,
		boardOf([]int{0, 1, 2}, []int{3, 4}).Key(), true,
	}, learner.learned[2])
}

func TestAgentTurns(t *testing.T) {
	learner := newScriptedLearner(3, 4, 5)
	s := newTestSession(learner)

	turn := playAll(t, s, 0)
	require.Equal(t, Turn{Human: 0, Agent: 3, Outcome: game.InProgress}, turn)
	require.Equal(t, transition{
		boardOf([]int{0}, nil).Key(), 3, 0,
		boardOf([]int{0}, []int{3}).Key(), false,
	}, learner.learned[0])

	turn = playAll(t, s, 1, 8)
	require.Equal(t, Turn{Human: 8, Agent: 5, Outcome: game.WonAgent}, turn)
	require.Equal(t, transition{
		boardOf([]int{0, 1, 8}, []int{3, 4}).Key(), 5, 1.0,
		boardOf([]int{0, 1, 8}, []int{3, 4, 5}).Key(), true,
	}, learner.learned[2])

	_, err := s.PlayHuman(context.Background(), 6)
	require.ErrorIs(t, err, ErrGameOver)
}

func TestDrawAfterHumanMoveDoesNotLearn(t *testing.T) {
	learner := newScriptedLearner(1, 4, 5, 6)
	s := newTestSession(learner)

	turn := playAll(t, s, 0, 2, 3, 7, 8)
	require.Equal(t, Turn{Human: 8, Agent: -1, Outcome: game.Drawn}, turn)
	require.Len(t, learner.learned, 4)
	require.Empty(t, s.Board().LegalMoves())
}

func TestIllegalHumanMove(t *testing.T) {
	learner := newScriptedLearner(3)
	s := newTestSession(learner)
	playAll(t, s, 0)
	board := s.Board()

	for _, cell := range []int{0, 3, -1, 9} {
		_, err := s.PlayHuman(context.Background(), cell)
		require.ErrorIs(t, err, game.ErrIllegalMove)
	}
	require.Equal(t, board, s.Board())
	require.Len(t, learner.learned, 1)
}

func TestResetKeepsLearning(t *testing.T) {
	learner := newScriptedLearner(3, 4)
	s := newTestSession(learner)
	first := s.GameID()
	playAll(t, s, 0, 1, 2)
	states := s.StatesLearned()
	require.Positive(t, states)

	s.Reset()
	require.Equal(t, game.Board{}, s.Board())
	require.Equal(t, game.InProgress, s.Outcome())
	require.Equal(t, states, s.StatesLearned())
	require.Equal(t, 2, s.Games())
	require.NotEqual(t, first, s.GameID())
	require.Equal(t, learner.Scores(game.Board{}.Key()), s.Scores())
}

func TestCancelledDelayLeavesReplyPending(t *testing.T) {
	learner := newScriptedLearner(4)
	s := newTestSession(learner, WithDelay(50*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	turn, err := s.PlayHuman(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, -1, turn.Agent)
	require.True(t, s.Pending())
	require.Equal(t, game.Human, s.Board().At(0))
	require.Empty(t, learner.learned)

	_, err = s.PlayHuman(context.Background(), 1)
	require.ErrorIs(t, err, ErrAgentPending)

	turn, err = s.Respond(context.Background())
	require.NoError(t, err)
	require.Equal(t, Turn{Human: 0, Agent: 4, Outcome: game.InProgress}, turn)
	require.False(t, s.Pending())

	_, err = s.Respond(context.Background())
	require.ErrorIs(t, err, ErrNotPending)
}

func TestGeometryCellAt(t *testing.T) {
	g := DefaultGeometry
	tests := []struct {
		x, y int
		cell int
		ok   bool
	}{
		{41, 151, 0, true},
		{190, 200, 1, true},
		{339, 160, 2, true},
		{90, 260, 3, true},
		{190, 349, 4, true},
		{300, 400, 8, true},
		{40, 200, -1, false},
		{340, 200, -1, false},
		{100, 150, -1, false},
		{100, 450, -1, false},
		{500, 500, -1, false},
	}
	for _, tt := range tests {
		cell, ok := g.CellAt(tt.x, tt.y)
		require.Equal(t, tt.ok, ok, "(%d, %d)", tt.x, tt.y)
		require.Equal(t, tt.cell, cell, "(%d, %d)", tt.x, tt.y)
	}
}
