package agent

import (
	"testing"

	"dicewars/combat"
	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/planner"

	"github.com/stretchr/testify/require"
)

type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

// fixedSearcher always answers with the same posture and counts how often it was asked
type fixedSearcher struct {
	posture planner.Posture
	calls   int
}

func (f *fixedSearcher) SelectPosture(b game.BoardView, player int) (planner.Posture, metrics.SearchMetric) {
	f.calls++
	return f.posture, metrics.SearchMetric{Algorithm: "fixed", Posture: f.posture.String()}
}

func newPlanner() *planner.Planner {
	return planner.New(planner.DefaultConfig(), combat.NewModel(combat.DefaultRiskPolicy(), constRandom(1)))
}

// newBoard returns 0(p1, 5) - 1(p2, 2) - 2(p2, 2)
func newBoard() *game.Board {
	b := game.NewBoard(game.NewLineMap(3), []int{1, 2})
	b.SetOwner(1, 2)
	b.SetOwner(2, 2)
	b.SetDice(0, 5)
	b.SetDice(1, 2)
	b.SetDice(2, 2)
	return b
}

func TestAgentTurn(t *testing.T) {
	t.Run("posture is searched once per turn", func(t *testing.T) {
		s := &fixedSearcher{posture: planner.FullTurn}
		a := NewAgent(1, newPlanner(), s)
		b := newBoard()

		require.Equal(t, game.Battle(0, 1), a.Turn(b))
		b.SetOwner(1, 1)
		b.SetDice(1, 4)
		b.SetDice(0, 1)

		// 1 now attacks 2 with 4 dice
		require.Equal(t, game.Battle(1, 2), a.Turn(b))
		require.Equal(t, 1, s.calls)
		require.Equal(t, "fixed", a.LastMetrics().Algorithm)
	})

	t.Run("pass posture ends the turn", func(t *testing.T) {
		s := &fixedSearcher{posture: planner.Pass}
		a := NewAgent(1, newPlanner(), s)

		require.Equal(t, game.EndTurn(), a.Turn(newBoard()))
		require.Equal(t, game.EndTurn(), a.Turn(newBoard()))
		require.Equal(t, 2, s.calls, "Every turn starts with a search")
	})

	t.Run("turn closed by the engine starts afresh", func(t *testing.T) {
		s := &fixedSearcher{posture: planner.FullTurn}
		a := NewAgent(1, newPlanner(), s)

		a.Turn(newBoard())
		a.EndTurn()
		a.Turn(newBoard())
		require.Equal(t, 2, s.calls)
	})

	t.Run("without searcher full turns are played", func(t *testing.T) {
		a := NewAgent(1, newPlanner(), nil)

		require.Equal(t, game.Battle(0, 1), a.Turn(newBoard()))
		require.Equal(t, "full", a.LastMetrics().Posture)
		require.Equal(t, "Player1", a.Name())
		require.Equal(t, 1, a.Player())
	})
}
