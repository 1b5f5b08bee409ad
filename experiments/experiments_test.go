package experiments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/agent"
	"tictactoe/game"
)

type firstLegal struct{}

func (firstLegal) SelectAction(_ game.StateKey, legal []int) int { return legal[0] }

func TestRunGame(t *testing.T) {
	// Agent takes 0, 2, 4, 6; opponent takes 1, 3, 5. Agent completes 2-4-6.
	outcome, err := runGame(firstLegal{}, firstLegal{})
	require.NoError(t, err)
	require.Equal(t, game.WonAgent, outcome)
}

func TestEvaluate(t *testing.T) {
	record, err := Evaluate(context.Background(), firstLegal{}, agent.NewRandomPolicy(nil), 30)
	require.NoError(t, err)
	require.Equal(t, 30, record.Games)
	require.Equal(t, 30, record.AgentWins+record.HumanWins+record.Draws)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, firstLegal{}, firstLegal{}, 5)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunEpisodesExperiment(t *testing.T) {
	records, err := RunEpisodesExperiment(context.Background(), Config{
		EpisodeCounts: []int{0, 50},
		Games:         20,
		Seed:          7,
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.Equal(t, 0, records[0].TrainingEpisodes)
	require.Equal(t, 50, records[1].TrainingEpisodes)
	require.Positive(t, records[1].StatesLearned)
	for _, r := range records {
		require.Equal(t, 20, r.Games)
		require.Equal(t, r.Games, r.AgentWins+r.HumanWins+r.Draws)
	}
}
