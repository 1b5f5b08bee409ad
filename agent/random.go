package agent

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"tictactoe/game"
)

// RandomPolicy plays a uniformly random legal cell. It is the fixed self-play
// opponent and does not learn.
type RandomPolicy struct {
	src rand.Source
}

var _ Policy = &RandomPolicy{}

func NewRandomPolicy(src rand.Source) *RandomPolicy {
	if src == nil {
		src = rand.NewSource(rand.Uint64())
	}
	return &RandomPolicy{src: src}
}

func (r *RandomPolicy) SelectAction(_ game.StateKey, legal []int) int {
	if len(legal) == 0 {
		panic("no legal moves to select from")
	}
	weights := make([]float64, len(legal))
	for i := range weights {
		weights[i] = 1
	}
	i, ok := sampleuv.NewWeighted(weights, r.src).Take()
	if !ok {
		panic("failed to sample a legal move")
	}
	return legal[i]
}
