package metrics

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"tictactoe/game"
)

type EpisodeMetric struct {
	Episode       int
	Outcome       game.Outcome
	AgentMoves    int
	Reward        float64 // Sum of rewards passed to the learner
	StatesLearned int     // Q-table size after the episode
	Duration      time.Duration
}

type TrainingMetric struct {
	Episodes      int
	AgentWins     int
	HumanWins     int
	Draws         int
	MeanReward    float64
	StdDevReward  float64
	StatesLearned int
	Duration      time.Duration
}

// WinRate is the share of episodes won by the agent.
func (m TrainingMetric) WinRate() float64 {
	if m.Episodes == 0 {
		return 0
	}
	return float64(m.AgentWins) / float64(m.Episodes)
}

// EvaluationRecord scores a trained agent playing greedily without learning.
type EvaluationRecord struct {
	TrainingEpisodes int
	Games            int
	AgentWins        int
	HumanWins        int
	Draws            int
	StatesLearned    int
}

func (r EvaluationRecord) WinRate() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.AgentWins) / float64(r.Games)
}

type Collector interface {
	Start()
	AddEpisode(EpisodeMetric)
	Episodes() []EpisodeMetric
	Complete() TrainingMetric
}

type collector struct {
	startTime time.Time
	episodes  []EpisodeMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start() {
	c.startTime = time.Now()
	c.episodes = c.episodes[:0]
}

func (c *collector) AddEpisode(m EpisodeMetric) {
	c.episodes = append(c.episodes, m)
}

func (c *collector) Episodes() []EpisodeMetric {
	return c.episodes
}

func (c *collector) Complete() TrainingMetric {
	m := TrainingMetric{
		Episodes: len(c.episodes),
		Duration: time.Since(c.startTime),
	}
	if len(c.episodes) == 0 {
		return m
	}
	rewards := make([]float64, len(c.episodes))
	for i, e := range c.episodes {
		rewards[i] = e.Reward
		switch e.Outcome {
		case game.WonAgent:
			m.AgentWins++
		case game.WonHuman:
			m.HumanWins++
		case game.Drawn:
			m.Draws++
		}
	}
	m.StatesLearned = c.episodes[len(c.episodes)-1].StatesLearned
	if len(rewards) > 1 {
		m.MeanReward, m.StdDevReward = stat.MeanStdDev(rewards, nil)
	} else {
		m.MeanReward = rewards[0]
	}
	return m
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (c *dummyCollector) Start()                    {}
func (c *dummyCollector) AddEpisode(EpisodeMetric)  {}
func (c *dummyCollector) Episodes() []EpisodeMetric { return nil }
func (c *dummyCollector) Complete() TrainingMetric  { return TrainingMetric{} }
