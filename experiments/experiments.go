package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/player"
)

const NumGames = 200 // Evaluation games per training length

// DefaultEpisodeCounts are the training lengths compared by RunEpisodesExperiment.
var DefaultEpisodeCounts = []int{0, 10, 100, 1000, 5000}

type Config struct {
	EpisodeCounts []int
	Games         int
	Seed          uint64
	Options       []agent.Option // Applied to every fresh learner
}

// RunEpisodesExperiment trains a fresh agent for each episode count and then
// plays it greedily, without learning, against a random opponent.
func RunEpisodesExperiment(ctx context.Context, config Config) ([]metrics.EvaluationRecord, error) {
	if len(config.EpisodeCounts) == 0 {
		config.EpisodeCounts = DefaultEpisodeCounts
	}
	if config.Games <= 0 {
		config.Games = NumGames
	}

	log.Info().Msgf("starting episodes experiment with %d training lengths...", len(config.EpisodeCounts))
	records := make([]metrics.EvaluationRecord, 0, len(config.EpisodeCounts))
	for i, episodes := range config.EpisodeCounts {
		src := rand.NewSource(config.Seed + uint64(i))
		learner := agent.NewQLearning(append(append([]agent.Option{}, config.Options...), agent.WithSource(src))...)

		trainer := player.NewTrainer(learner)
		if _, err := trainer.Run(ctx, episodes); err != nil {
			return records, fmt.Errorf("training %d episodes: %w", episodes, err)
		}

		record, err := Evaluate(ctx, learner, agent.NewRandomPolicy(src), config.Games)
		if err != nil {
			return records, err
		}
		record.TrainingEpisodes = episodes
		record.StatesLearned = learner.Size()
		records = append(records, record)

		log.Info().Msgf("completed training length %d of %d: episodes=%d win_rate=%.3f",
			i+1, len(config.EpisodeCounts), episodes, record.WinRate())
	}
	log.Info().Msg("completed episodes experiment")
	return records, nil
}

// Evaluate plays games with policy on the agent mark, moving first, against
// opponent. Nothing is learned.
func Evaluate(ctx context.Context, policy, opponent agent.Policy, games int) (metrics.EvaluationRecord, error) {
	record := metrics.EvaluationRecord{Games: games}
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return record, err
		}
		outcome, err := runGame(policy, opponent)
		if err != nil {
			return record, fmt.Errorf("game %d: %w", i+1, err)
		}
		switch outcome {
		case game.WonAgent:
			record.AgentWins++
		case game.WonHuman:
			record.HumanWins++
		case game.Drawn:
			record.Draws++
		}
	}
	return record, nil
}

// runGame executes a single game between two policies and returns the outcome
func runGame(policy, opponent agent.Policy) (game.Outcome, error) {
	board := game.Board{}
	players := []struct {
		mark   game.Mark
		policy agent.Policy
	}{
		{game.Agent, policy},
		{game.Human, opponent},
	}
	for turn := 0; !board.Evaluate().Terminal(); turn++ {
		p := players[turn%2]
		move := p.policy.SelectAction(board.Key(), board.LegalMoves())
		next, err := board.Play(move, p.mark)
		if err != nil {
			return board.Evaluate(), err
		}
		board = next
	}
	return board.Evaluate(), nil
}
