package searcher

import (
	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/planner"

	"github.com/rs/zerolog/log"
)

// AlphaBetaSearch is max-n with shallow pruning. The evaluation entries must be non-negative and
// sum to the number of areas, as with game.EvaluateAreas: once a player's best value reaches the
// bound left over by the previous player, nothing this player does can improve the previous
// player's choice and the remaining postures are skipped.
type AlphaBetaSearch struct {
	search
}

func NewAlphaBeta(sim *Simulator, options ...Option) *AlphaBetaSearch {
	return &AlphaBetaSearch{search: newSearch(sim, options)}
}

func (a *AlphaBetaSearch) SelectPosture(b game.BoardView, player int) (planner.Posture, metrics.SearchMetric) {
	a.metrics.Start(AlphaBeta, a.depth)

	board := b.Clone()
	total := float64(board.NumAreas())
	idx := playerIndex(board, player)

	record := a.simulate(board, player, planner.Postures[0])
	best := a.alphaBeta(board, nextIndex(board, idx), a.depth-1, total)
	a.sim.Unsimulate(board, record)
	posture := planner.Postures[0]

	for i, candidate := range planner.Postures[1:] {
		if best[idx] >= total {
			a.metrics.AddPruned(len(planner.Postures) - 1 - i)
			break
		}
		record := a.simulate(board, player, candidate)
		value := a.alphaBeta(board, nextIndex(board, idx), a.depth-1, total-best[idx])
		a.sim.Unsimulate(board, record)

		if value[idx] > best[idx] {
			best, posture = value, candidate
		}
	}

	log.Debug().Int("player", player).Msgf("alpha-beta selected %v with %v", posture, best)
	return posture, a.metrics.Complete(posture.String())
}

func (a *AlphaBetaSearch) alphaBeta(board game.BoardView, idx, depth int, bound float64) []float64 {
	if depth <= 0 {
		return a.leaf(board)
	}

	player := board.Players()[idx]
	total := float64(board.NumAreas())

	record := a.simulate(board, player, planner.Postures[0])
	best := a.alphaBeta(board, nextIndex(board, idx), depth-1, total)
	a.sim.Unsimulate(board, record)

	for i, posture := range planner.Postures[1:] {
		if best[idx] >= bound {
			a.metrics.AddPruned(len(planner.Postures) - 1 - i)
			return best
		}
		record := a.simulate(board, player, posture)
		value := a.alphaBeta(board, nextIndex(board, idx), depth-1, total-best[idx])
		a.sim.Unsimulate(board, record)

		if value[idx] > best[idx] {
			best = value
		}
	}
	return best
}
