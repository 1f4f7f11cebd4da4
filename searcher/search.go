package searcher

import (
	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/meta"
	"dicewars/planner"
	"dicewars/utils"
)

const (
	MaxN      = "maxn"
	AlphaBeta = "alphabeta"
)

// Searcher picks the posture of a real turn by simulating several turns ahead.
type Searcher interface {
	SelectPosture(b game.BoardView, player int) (planner.Posture, metrics.SearchMetric)
}

type Option func(s *search)

type search struct {
	sim      *Simulator
	depth    int
	evaluate game.Evaluate
	metrics  metrics.Collector
}

func WithDepth(depth int) Option {
	return func(s *search) {
		if depth > 0 {
			s.depth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *search) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *search) {
		s.metrics = metrics.NewCollector()
	}
}

func newSearch(sim *Simulator, options []Option) search {
	if sim == nil {
		panic("Searcher requires a simulator")
	}
	s := search{ // Default values
		sim:      sim,
		depth:    meta.SEARCH_DEPTH,
		evaluate: game.EvaluateAreas,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// New returns the searcher registered under algorithm.
func New(algorithm string, sim *Simulator, options ...Option) Searcher {
	switch algorithm {
	case MaxN:
		return NewMaxN(sim, options...)
	case AlphaBeta:
		return NewAlphaBeta(sim, options...)
	default:
		panic("Unknown search algorithm " + algorithm)
	}
}

func (s *search) simulate(b game.BoardView, player int, posture planner.Posture) TurnRecord {
	s.metrics.AddSimulatedTurn()
	return s.sim.Simulate(b, player, posture)
}

func (s *search) leaf(b game.BoardView) []float64 {
	s.metrics.AddEvaluation()
	return s.evaluate(b)
}

// playerIndex returns the position of player in the board's turn order
func playerIndex(b game.BoardView, player int) int {
	idx := utils.FindIndex(b.Players(), player)
	if idx < 0 {
		panic("Player is not part of the game")
	}
	return idx
}

func nextIndex(b game.BoardView, idx int) int {
	return (idx + 1) % len(b.Players())
}
