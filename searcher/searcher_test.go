package searcher

import (
	"testing"

	"dicewars/combat"
	"dicewars/game"
	"dicewars/planner"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

// newSimulator returns a simulator whose planner only takes certain attacks and whose battles
// are decided by draw against the win probability
func newSimulator(draw combat.Random) *Simulator {
	model := combat.NewModel(combat.DefaultRiskPolicy(), constRandom(1))
	return NewSimulator(planner.New(planner.DefaultConfig(), model), game.NewStandardRules(), draw)
}

func TestSimulateRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	sim := newSimulator(rnd)

	for round := 0; round < 25; round++ {
		b := game.NewRandomBoard(game.NewGridMap(5, 5), []int{1, 2, 3}, 30, rnd)
		for _, player := range b.Players() {
			for _, posture := range planner.Postures {
				before := b.Snapshot()
				record := sim.Simulate(b, player, posture)
				if posture == planner.Pass {
					require.Empty(t, record)
				}
				sim.Unsimulate(b, record)
				require.True(t, before.Equal(b.Snapshot()), "round %d player %d posture %v", round, player, posture)
			}
		}
	}
}

func TestSimulate(t *testing.T) {
	t.Run("won battle changes owner", func(t *testing.T) {
		b := game.NewBoard(game.NewLineMap(2), []int{1, 2})
		b.SetOwner(1, 2)
		b.SetDice(0, 5)
		b.SetDice(1, 2)

		record := newSimulator(constRandom(0)).Simulate(b, 1, planner.FullTurn)
		require.Equal(t, TurnRecord{{
			Type: game.BattleAction, Source: 0, Target: 1,
			SourceBefore: 5, SourceAfter: 1,
			TargetBefore: 2, TargetAfter: 4,
			OwnerBefore: 2, OwnerAfter: 1,
		}}, record)
		require.Equal(t, 1, b.Winner())
	})

	t.Run("lost battle wears the defender down", func(t *testing.T) {
		b := game.NewBoard(game.NewLineMap(2), []int{1, 2})
		b.SetOwner(1, 2)
		b.SetDice(0, 8)
		b.SetDice(1, 7)

		record := newSimulator(constRandom(0.999)).Simulate(b, 1, planner.FullTurn)
		require.NotEmpty(t, record)
		require.Equal(t, game.BattleAction, record[0].Type)
		require.Equal(t, 5, record[0].TargetAfter)
		require.Equal(t, 2, record[0].OwnerAfter)
	})

	t.Run("action cap ends runaway turns", func(t *testing.T) {
		b := game.NewBoard(game.NewLineMap(6), []int{1, 2})
		for id := 3; id < 6; id++ {
			b.SetOwner(id, 2)
		}
		for _, id := range b.AreaIDs() {
			b.SetDice(id, 8)
		}
		sim := newSimulator(constRandom(0))
		sim.maxActions = 1

		require.Len(t, sim.Simulate(b, 1, planner.FullTurn), 1)
	})
}

func TestSelectPosture(t *testing.T) {
	newLineBoard := func() *game.Board {
		b := game.NewBoard(game.NewLineMap(2), []int{1, 2})
		b.SetOwner(1, 2)
		b.SetDice(0, 5)
		b.SetDice(1, 2)
		return b
	}

	t.Run("winning attack is preferred", func(t *testing.T) {
		for _, algorithm := range []string{MaxN, AlphaBeta} {
			b := newLineBoard()
			before := b.Snapshot()

			posture, metric := New(algorithm, newSimulator(constRandom(0)), WithDepth(1), WithMetrics()).SelectPosture(b, 1)
			require.Equal(t, planner.FullTurn, posture, algorithm)
			require.Equal(t, "full", metric.Posture)
			require.Equal(t, algorithm, metric.Algorithm)
			require.True(t, before.Equal(b.Snapshot()), "Live board was modified by %s", algorithm)
		}
	})

	t.Run("maxn visits the full tree", func(t *testing.T) {
		_, metric := NewMaxN(newSimulator(constRandom(0)), WithDepth(2), WithMetrics()).SelectPosture(newLineBoard(), 1)
		require.Equal(t, 3+9, metric.SimulatedTurns)
		require.Equal(t, 9, metric.Evaluations)
		require.Zero(t, metric.Pruned)
	})

	t.Run("alpha-beta stops once every area is won", func(t *testing.T) {
		posture, metric := NewAlphaBeta(newSimulator(constRandom(0)), WithDepth(2), WithMetrics()).SelectPosture(newLineBoard(), 1)
		require.Equal(t, planner.FullTurn, posture)
		require.Equal(t, 2, metric.Pruned)
		require.Less(t, metric.SimulatedTurns, 3+9)
	})

	t.Run("custom evaluation decides the posture", func(t *testing.T) {
		// Scoring only the dice kept in area 0 makes attacking the worst choice
		calls := 0
		keepDice := func(b game.BoardView) []float64 {
			calls++
			return []float64{float64(b.Dice(0)), 0}
		}

		posture, metric := NewMaxN(newSimulator(constRandom(0)), WithDepth(1), WithEvaluationFn(keepDice), WithMetrics()).
			SelectPosture(newLineBoard(), 1)
		require.Equal(t, planner.DefendOnly, posture, "Ties keep the earlier posture")
		require.Equal(t, 3, calls)
		require.Equal(t, 3, metric.Evaluations)
	})

	t.Run("nil evaluation keeps the default", func(t *testing.T) {
		posture, _ := NewMaxN(newSimulator(constRandom(0)), WithDepth(1), WithEvaluationFn(nil)).SelectPosture(newLineBoard(), 1)
		require.Equal(t, planner.FullTurn, posture)
	})

	t.Run("no metrics by default", func(t *testing.T) {
		_, metric := NewMaxN(newSimulator(constRandom(0)), WithDepth(1)).SelectPosture(newLineBoard(), 1)
		require.Zero(t, metric.SimulatedTurns)
		require.Equal(t, "full", metric.Posture)
	})
}

func TestAlphaBetaMatchesMaxN(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for round := 0; round < 12; round++ {
		b := game.NewRandomBoard(game.NewGridMap(4, 4), []int{1, 2, 3}, 20, rnd)
		for depth := 1; depth <= 3; depth++ {
			for _, draw := range []constRandom{0.2, 0.5, 0.9} {
				maxn, maxnMetric := NewMaxN(newSimulator(draw), WithDepth(depth), WithMetrics()).SelectPosture(b, 1)
				ab, abMetric := NewAlphaBeta(newSimulator(draw), WithDepth(depth), WithMetrics()).SelectPosture(b, 1)

				require.Equal(t, maxn, ab, "round %d depth %d draw %v", round, depth, draw)
				require.LessOrEqual(t, abMetric.SimulatedTurns, maxnMetric.SimulatedTurns)
			}
		}
	}
}
