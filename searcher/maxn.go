package searcher

import (
	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/planner"

	"github.com/rs/zerolog/log"
)

// MaxNSearch evaluates every posture of every player down to the configured depth and lets
// each player maximise their own entry of the evaluation vector.
type MaxNSearch struct {
	search
}

func NewMaxN(sim *Simulator, options ...Option) *MaxNSearch {
	return &MaxNSearch{search: newSearch(sim, options)}
}

func (m *MaxNSearch) SelectPosture(b game.BoardView, player int) (planner.Posture, metrics.SearchMetric) {
	m.metrics.Start(MaxN, m.depth)

	board := b.Clone()
	idx := playerIndex(board, player)
	var (
		best    []float64
		posture planner.Posture
	)
	for _, candidate := range planner.Postures {
		record := m.simulate(board, player, candidate)
		value := m.maxn(board, nextIndex(board, idx), m.depth-1)
		m.sim.Unsimulate(board, record)

		if best == nil || value[idx] > best[idx] {
			best, posture = value, candidate
		}
	}

	log.Debug().Int("player", player).Msgf("maxn selected %v with %v", posture, best)
	return posture, m.metrics.Complete(posture.String())
}

func (m *MaxNSearch) maxn(board game.BoardView, idx, depth int) []float64 {
	if depth <= 0 {
		return m.leaf(board)
	}

	player := board.Players()[idx]
	var best []float64
	for _, posture := range planner.Postures {
		record := m.simulate(board, player, posture)
		value := m.maxn(board, nextIndex(board, idx), depth-1)
		m.sim.Unsimulate(board, record)

		if best == nil || value[idx] > best[idx] {
			best = value
		}
	}
	return best
}
