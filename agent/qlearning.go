package agent

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"tictactoe/game"
)

const (
	DefaultAlpha        = 0.9
	DefaultGamma        = 0.95
	DefaultEpsilon      = 0.0
	DefaultInitialScore = 0.5
)

type Option func(q *QLearning)

// QLearning is a tabular Q-learning agent. It is not safe for concurrent use;
// training and interactive play hand the same instance over in turn.
type QLearning struct {
	table   map[game.StateKey]*[game.Cells]float64
	alpha   float64
	gamma   float64
	epsilon float64
	initial float64
	src     rand.Source
	rng     *rand.Rand
}

func WithAlpha(alpha float64) Option {
	return func(q *QLearning) {
		q.alpha = alpha
	}
}

func WithGamma(gamma float64) Option {
	return func(q *QLearning) {
		q.gamma = gamma
	}
}

// WithEpsilon enables epsilon-greedy exploration: with probability epsilon
// SelectAction returns a uniformly random legal cell.
func WithEpsilon(epsilon float64) Option {
	return func(q *QLearning) {
		q.epsilon = epsilon
	}
}

// WithInitialScore sets the value new rows are filled with.
func WithInitialScore(score float64) Option {
	return func(q *QLearning) {
		q.initial = score
	}
}

func WithSeed(seed uint64) Option {
	return func(q *QLearning) {
		q.src = rand.NewSource(seed)
	}
}

func WithSource(src rand.Source) Option {
	return func(q *QLearning) {
		if src != nil {
			q.src = src
		}
	}
}

func NewQLearning(options ...Option) *QLearning {
	q := &QLearning{ // Default values
		table:   make(map[game.StateKey]*[game.Cells]float64),
		alpha:   DefaultAlpha,
		gamma:   DefaultGamma,
		epsilon: DefaultEpsilon,
		initial: DefaultInitialScore,
	}
	for _, option := range options {
		option(q)
	}
	if q.alpha <= 0 || math.IsNaN(q.alpha) {
		panic(fmt.Sprintf("alpha must be positive, got %v", q.alpha))
	}
	if q.gamma < 0 || q.gamma > 1 || math.IsNaN(q.gamma) {
		panic(fmt.Sprintf("gamma must be in [0, 1], got %v", q.gamma))
	}
	if q.epsilon < 0 || q.epsilon > 1 || math.IsNaN(q.epsilon) {
		panic(fmt.Sprintf("epsilon must be in [0, 1], got %v", q.epsilon))
	}
	if q.src == nil {
		q.src = rand.NewSource(rand.Uint64())
	}
	q.rng = rand.New(q.src)
	return q
}

func (q *QLearning) Alpha() float64   { return q.alpha }
func (q *QLearning) Gamma() float64   { return q.gamma }
func (q *QLearning) Epsilon() float64 { return q.epsilon }

// Source is the random source used for tie-breaks and exploration.
func (q *QLearning) Source() rand.Source {
	return q.src
}

func (q *QLearning) row(state game.StateKey) *[game.Cells]float64 {
	r, ok := q.table[state]
	if !ok {
		r = new([game.Cells]float64)
		for i := range r {
			r[i] = q.initial
		}
		q.table[state] = r
	}
	return r
}

func (q *QLearning) Scores(state game.StateKey) [game.Cells]float64 {
	return *q.row(state)
}

func (q *QLearning) Size() int {
	return len(q.table)
}

// SelectAction is greedy over the legal cells only, breaking ties uniformly
// at random so that no index is favoured.
func (q *QLearning) SelectAction(state game.StateKey, legal []int) int {
	if len(legal) == 0 {
		panic("no legal moves to select from")
	}
	scores := q.row(state)
	if q.epsilon > 0 && q.rng.Float64() < q.epsilon {
		return legal[q.rng.Intn(len(legal))]
	}

	best := math.Inf(-1)
	ties := make([]int, 0, len(legal))
	for _, a := range legal {
		switch s := scores[a]; {
		case s > best:
			best = s
			ties = append(ties[:0], a)
		case s == best:
			ties = append(ties, a)
		}
	}
	return ties[q.rng.Intn(len(ties))]
}

// Learn applies the Bellman update
//
//	Q(s,a) += alpha * (r + gamma*V(s') - Q(s,a))
//
// where V(s') is 0 for terminal transitions and otherwise the maximum over
// all 9 entries of the row for s', legal or not.
func (q *QLearning) Learn(state game.StateKey, action int, reward float64, next game.StateKey, terminal bool) {
	scores := q.row(state)
	future := 0.0
	if !terminal {
		future = math.Inf(-1)
		for _, s := range q.row(next) {
			future = math.Max(future, s)
		}
	}
	scores[action] += q.alpha * (reward + q.gamma*future - scores[action])
}

var _ Learner = &QLearning{}
