package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestGridMap(t *testing.T) {
	t.Run("adjacency is symmetric and sorted", func(t *testing.T) {
		m := NewGridMap(4, 5)
		require.Len(t, m.Areas, 20)
		for id, area := range m.Areas {
			for i, adj := range area.AdjacentIDs {
				require.NotEqual(t, id, adj, "Area should not border itself")
				require.True(t, m.AreAdjacent(adj, id), "Border %d-%d should be symmetric", id, adj)
				if i > 0 {
					require.Less(t, area.AdjacentIDs[i-1], adj, "Adjacency should be sorted")
				}
			}
		}
	})

	t.Run("inner area has six neighbours", func(t *testing.T) {
		m := NewGridMap(3, 3)
		require.Len(t, m.Areas[4].AdjacentIDs, 6)
	})

	t.Run("duplicate borders are ignored", func(t *testing.T) {
		m := NewLineMap(2)
		m.AddBorder(0, 1)
		m.AddBorder(1, 0)
		require.Equal(t, []int{1}, m.Areas[0].AdjacentIDs)
	})
}

func TestBoard(t *testing.T) {
	t.Run("border areas touch an enemy", func(t *testing.T) {
		b := NewBoard(NewLineMap(4), []int{1, 2})
		b.Ownership = []int{1, 1, 2, 2}

		require.Equal(t, []int{0, 1}, b.PlayerAreas(1))
		require.Equal(t, []int{1}, b.PlayerBorder(1))
		require.Equal(t, []int{2}, b.PlayerBorder(2))
	})

	t.Run("copy is independent", func(t *testing.T) {
		b := NewBoard(NewLineMap(3), []int{1, 2})
		c := b.Copy()
		c.SetDice(0, 5)
		c.SetOwner(1, 2)

		require.Equal(t, 1, b.Dice(0))
		require.Equal(t, 1, b.Owner(1))
		require.Same(t, b.Map, c.Map, "Map should be shared")
	})

	t.Run("snapshot is not affected by later moves", func(t *testing.T) {
		b := NewBoard(NewLineMap(3), []int{1, 2})
		before := b.Snapshot()
		b.SetDice(2, 7)
		b.SetOwner(2, 2)
		require.False(t, before.Equal(b.Snapshot()))
		require.Equal(t, []int{1, 1, 1}, before.Dice)
		require.Equal(t, []int{1, 1, 1}, before.Owners)
		require.True(t, b.Snapshot().Equal(b.Copy().Snapshot()))
	})

	t.Run("dice out of range panics", func(t *testing.T) {
		b := NewBoard(NewLineMap(2), []int{1})
		require.Panics(t, func() { b.SetDice(0, 0) })
		require.Panics(t, func() { b.SetDice(0, MaxDice+1) })
	})

	t.Run("unknown owner panics", func(t *testing.T) {
		b := NewBoard(NewLineMap(2), []int{1, 2})
		require.Panics(t, func() { b.SetOwner(0, 3) })
	})

	t.Run("random board deals every area", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(7))
		b := NewRandomBoard(NewGridMap(5, 6), []int{1, 2, 3}, 25, rnd)
		total := 0
		for _, player := range b.Players() {
			require.Len(t, b.PlayerAreas(player), 10)
			dice := 0
			for _, id := range b.PlayerAreas(player) {
				require.GreaterOrEqual(t, b.Dice(id), 1)
				require.LessOrEqual(t, b.Dice(id), MaxDice)
				dice += b.Dice(id)
			}
			require.Equal(t, 25, dice)
			total += len(b.PlayerAreas(player))
		}
		require.Equal(t, b.NumAreas(), total)
	})

	t.Run("winner owns everything", func(t *testing.T) {
		b := NewBoard(NewLineMap(3), []int{1, 2})
		require.Equal(t, 1, b.Winner())
		b.SetOwner(1, 2)
		require.Equal(t, 0, b.Winner())
	})
}

func TestValidate(t *testing.T) {
	b := NewBoard(NewLineMap(4), []int{1, 2})
	b.Ownership = []int{1, 1, 2, 2}
	b.DiceCounts = []int{3, 4, 2, 1}

	require.NoError(t, Validate(b, 1, Battle(1, 2)))
	require.NoError(t, Validate(b, 1, Transfer(1, 0)))
	require.NoError(t, Validate(b, 1, EndTurn()))

	require.Error(t, Validate(b, 1, Battle(0, 2)), "Areas are not adjacent")
	require.Error(t, Validate(b, 1, Battle(1, 0)), "Cannot attack own area")
	require.Error(t, Validate(b, 1, Transfer(1, 2)), "Cannot transfer to enemy")
	require.Error(t, Validate(b, 2, Battle(3, 1)), "Areas are not adjacent")
	require.Error(t, Validate(b, 2, Transfer(3, 2)), "Single die cannot move")
	require.Error(t, Validate(b, 1, Battle(2, 1)), "Source is not owned")
	require.Error(t, Validate(b, 1, Battle(1, 9)), "Out of range")

	b.DiceCounts[0] = MaxDice
	require.Error(t, Validate(b, 1, Transfer(1, 0)), "Target is full")
}
