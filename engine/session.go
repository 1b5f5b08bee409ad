package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tictactoe/agent"
	"tictactoe/game"
	"tictactoe/player"
)

type Option func(s *Session)

// WithDelay sets the pause between the human move and the agent's reply.
func WithDelay(delay time.Duration) Option {
	return func(s *Session) {
		if delay >= 0 {
			s.delay = delay
		}
	}
}

func WithRewards(rewards player.Rewards) Option {
	return func(s *Session) {
		s.rewards = rewards
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is a human playing the human mark against the learner, one game
// after another. The learner keeps learning online and its table survives
// Reset. A Session is driven from a single goroutine.
type Session struct {
	id      uuid.UUID
	gameID  uuid.UUID
	games   int
	learner agent.Learner
	rewards player.Rewards
	delay   time.Duration
	logger  zerolog.Logger

	board     game.Board
	pending   bool
	lastHuman int
}

func NewSession(learner agent.Learner, options ...Option) *Session {
	if learner == nil {
		panic("session needs a learner")
	}
	s := &Session{
		id:      uuid.New(),
		learner: learner,
		rewards: player.StandardRewards,
		logger:  log.Logger,
	}
	for _, option := range options {
		option(s)
	}
	s.logger = s.logger.With().Str("session", s.id.String()).Logger()
	s.Reset()
	return s
}

func (s *Session) ID() uuid.UUID     { return s.id }
func (s *Session) GameID() uuid.UUID { return s.gameID }

// Games is the number of games started in this session, the current one included.
func (s *Session) Games() int { return s.games }

func (s *Session) Board() game.Board     { return s.board }
func (s *Session) Outcome() game.Outcome { return s.board.Evaluate() }

// Pending reports whether the agent still owes a reply.
func (s *Session) Pending() bool { return s.pending }

// Scores returns the learner's scores for the current board.
func (s *Session) Scores() [game.Cells]float64 {
	return s.learner.Scores(s.board.Key())
}

func (s *Session) StatesLearned() int {
	return s.learner.Size()
}

// Reset starts a new game. The learner is left as is.
func (s *Session) Reset() {
	s.board = game.Board{}
	s.pending = false
	s.lastHuman = -1
	s.gameID = uuid.New()
	s.games++
	s.logger.Info().Str("game", s.gameID.String()).Int("states", s.learner.Size()).Msg("new game")
}

// PlayHuman places the human mark at index and, unless that ends the game,
// waits for the pacing delay and plays the agent's reply. If ctx ends during
// the delay the human move stands and the reply stays pending until Respond.
func (s *Session) PlayHuman(ctx context.Context, index int) (Turn, error) {
	if s.pending {
		return Turn{Human: -1, Agent: -1, Outcome: s.Outcome()}, ErrAgentPending
	}
	before := s.board
	if before.Evaluate().Terminal() {
		return Turn{Human: -1, Agent: -1, Outcome: before.Evaluate()}, ErrGameOver
	}
	next, err := before.Play(index, game.Human)
	if err != nil {
		return Turn{Human: -1, Agent: -1, Outcome: before.Evaluate()}, err
	}
	s.board = next
	s.lastHuman = index

	outcome := next.Evaluate()
	logger := s.logger.With().Str("game", s.gameID.String()).Int("human", index).Logger()
	switch outcome {
	case game.WonHuman:
		// The human's winning cell is recorded as a loss for the position before it.
		s.learner.Learn(before.Key(), index, s.rewards.HumanWin, next.Key(), true)
		logger.Info().Stringer("outcome", outcome).Msg("human won")
		return Turn{Human: index, Agent: -1, Outcome: outcome}, nil
	case game.Drawn:
		logger.Info().Stringer("outcome", outcome).Msg("game drawn")
		return Turn{Human: index, Agent: -1, Outcome: outcome}, nil
	}

	s.pending = true
	return s.Respond(ctx)
}

// Respond plays the pending agent reply after the pacing delay.
func (s *Session) Respond(ctx context.Context) (Turn, error) {
	turn := Turn{Human: s.lastHuman, Agent: -1, Outcome: s.Outcome()}
	if !s.pending {
		return turn, ErrNotPending
	}
	if err := s.wait(ctx); err != nil {
		return turn, err
	}

	before := s.board
	action := s.learner.SelectAction(before.Key(), before.LegalMoves())
	next, err := before.Play(action, game.Agent)
	if err != nil {
		return turn, fmt.Errorf("agent move: %w", err)
	}
	s.board = next
	s.pending = false
	s.lastHuman = -1

	outcome := next.Evaluate()
	reward := s.rewards.AfterAgent(outcome)
	s.learner.Learn(before.Key(), action, reward, next.Key(), outcome.Terminal())

	s.logger.Debug().
		Str("game", s.gameID.String()).
		Int("agent", action).
		Float64("reward", reward).
		Stringer("outcome", outcome).
		Msg("agent replied")
	if outcome.Terminal() {
		s.logger.Info().Str("game", s.gameID.String()).Stringer("outcome", outcome).Msg("game over")
	}

	turn.Agent = action
	turn.Outcome = outcome
	return turn, nil
}

func (s *Session) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
