package player

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type Option func(t *Trainer)

// Trainer runs self-play episodes: the learner plays the agent mark and
// always moves first, a fixed opponent policy plays the human mark.
type Trainer struct {
	learner   agent.Learner
	opponent  agent.Policy
	rewards   Rewards
	collector metrics.Collector
}

// WithOpponent replaces the uniformly random opponent.
func WithOpponent(opponent agent.Policy) Option {
	return func(t *Trainer) {
		if opponent != nil {
			t.opponent = opponent
		}
	}
}

func WithRewards(rewards Rewards) Option {
	return func(t *Trainer) {
		t.rewards = rewards
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(t *Trainer) {
		if collector != nil {
			t.collector = collector
		}
	}
}

func NewTrainer(learner agent.Learner, options ...Option) *Trainer {
	if learner == nil {
		panic("trainer needs a learner")
	}
	t := &Trainer{
		learner:   learner,
		rewards:   StandardRewards,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(t)
	}
	if t.opponent == nil {
		// Share the learner's source so a seeded agent gives a reproducible run.
		if q, ok := learner.(interface{ Source() rand.Source }); ok {
			t.opponent = agent.NewRandomPolicy(q.Source())
		} else {
			t.opponent = agent.NewRandomPolicy(nil)
		}
	}
	return t
}

// RunTraining trains learner against a random opponent for the given number
// of episodes.
func RunTraining(learner agent.Learner, episodes int) (metrics.TrainingMetric, error) {
	return NewTrainer(learner, WithCollector(metrics.NewCollector())).Run(context.Background(), episodes)
}

// Run plays episodes one after the other. Cancellation is checked between
// episodes only.
func (t *Trainer) Run(ctx context.Context, episodes int) (metrics.TrainingMetric, error) {
	log.Info().Msgf("starting self-play training for %d episodes...", episodes)
	t.collector.Start()
	for i := 1; i <= episodes; i++ {
		if err := ctx.Err(); err != nil {
			return t.collector.Complete(), fmt.Errorf("training stopped after %d episodes: %w", i-1, err)
		}
		m, err := t.runEpisode(i)
		if err != nil {
			return t.collector.Complete(), fmt.Errorf("episode %d: %w", i, err)
		}
		t.collector.AddEpisode(m)
		log.Debug().
			Int("episode", i).
			Stringer("outcome", m.Outcome).
			Float64("reward", m.Reward).
			Int("states", m.StatesLearned).
			Msg("completed episode")
	}
	summary := t.collector.Complete()
	log.Info().
		Int("episodes", episodes).
		Int("states", t.learner.Size()).
		Int("agent_wins", summary.AgentWins).
		Int("human_wins", summary.HumanWins).
		Int("draws", summary.Draws).
		Msg("completed self-play training")
	return summary, nil
}

func (t *Trainer) runEpisode(episode int) (metrics.EpisodeMetric, error) {
	start := time.Now()
	m := metrics.EpisodeMetric{Episode: episode}
	board := game.Board{}
	outcome := game.InProgress

	for !outcome.Terminal() {
		before := board.Key()
		action := t.learner.SelectAction(before, board.LegalMoves())
		next, err := board.Play(action, game.Agent)
		if err != nil {
			return m, fmt.Errorf("agent move: %w", err)
		}
		board = next
		m.AgentMoves++

		outcome = board.Evaluate()
		if outcome.Terminal() {
			reward := t.rewards.AfterAgent(outcome)
			t.learner.Learn(before, action, reward, board.Key(), true)
			m.Reward += reward
			break
		}

		reply := t.opponent.SelectAction(board.Key(), board.LegalMoves())
		next, err = board.Play(reply, game.Human)
		if err != nil {
			return m, fmt.Errorf("opponent move: %w", err)
		}
		board = next

		outcome = board.Evaluate()
		reward := t.rewards.AfterOpponent(outcome)
		t.learner.Learn(before, action, reward, board.Key(), outcome.Terminal())
		m.Reward += reward
	}

	m.Outcome = outcome
	m.StatesLearned = t.learner.Size()
	m.Duration = time.Since(start)
	return m, nil
}
