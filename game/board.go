package game

import (
	"fmt"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// MaxDice is the maximum number of dice an area can hold.
const MaxDice = 8

// BoardView is the read/write accessor the planning core works against.
// Adjacency is fixed; only dice counts and owners change.
type BoardView interface {
	NumAreas() int
	AreaIDs() []int
	Adjacent(id int) []int
	Dice(id int) int
	SetDice(id, dice int)
	Owner(id int) int
	SetOwner(id, player int)
	CanAttack(id int) bool
	Players() []int
	PlayerAreas(player int) []int
	PlayerBorder(player int) []int
	Clone() BoardView
	Snapshot() Snapshot
}

// Board represents the dynamic state of the game: who owns each area and how many dice it holds.
// The map is static and shared between copies.
type Board struct {
	Map        *Map  // Reference to the static game map
	DiceCounts []int // Dice per area, indexed by area ID
	Ownership  []int // Owner IDs per area, indexed by area ID
	Order      []int // Player IDs in turn order
}

// NewBoard creates a board where every area belongs to the first player with a single die.
func NewBoard(m *Map, players []int) *Board {
	if len(players) == 0 {
		panic("board needs at least one player")
	}
	n := len(m.Areas)
	b := &Board{
		Map:        m,
		DiceCounts: make([]int, n),
		Ownership:  make([]int, n),
		Order:      slices.Clone(players),
	}
	for i := 0; i < n; i++ {
		if _, ok := m.Areas[i]; !ok {
			panic(fmt.Sprintf("map area IDs must be dense, missing %d", i))
		}
		b.DiceCounts[i] = 1
		b.Ownership[i] = players[0]
	}
	return b
}

// NewRandomBoard deals the areas of m round-robin between players in random order, gives
// every area one die and then spreads the remaining dicePerPlayer dice over each player's areas.
func NewRandomBoard(m *Map, players []int, dicePerPlayer int, rnd *rand.Rand) *Board {
	b := NewBoard(m, players)
	ids := b.AreaIDs()
	rnd.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	for i, id := range ids {
		b.Ownership[id] = players[i%len(players)]
	}
	for _, player := range players {
		owned := b.PlayerAreas(player)
		for extra := dicePerPlayer - len(owned); extra > 0; extra-- {
			open := slices.DeleteFunc(slices.Clone(owned), func(id int) bool { return b.DiceCounts[id] >= MaxDice })
			if len(open) == 0 {
				break
			}
			b.DiceCounts[open[rnd.Intn(len(open))]]++
		}
	}
	return b
}

func (b *Board) NumAreas() int {
	return len(b.DiceCounts)
}

func (b *Board) AreaIDs() []int {
	ids := make([]int, len(b.DiceCounts))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (b *Board) Adjacent(id int) []int {
	return b.Map.Areas[id].AdjacentIDs
}

func (b *Board) Dice(id int) int {
	return b.DiceCounts[id]
}

// SetDice panics outside [1, MaxDice]: no mutation may leave an area empty or overfull.
func (b *Board) SetDice(id, dice int) {
	if dice < 1 || dice > MaxDice {
		panic(fmt.Sprintf("area %d: dice count %d out of range [1, %d]", id, dice, MaxDice))
	}
	b.DiceCounts[id] = dice
}

func (b *Board) Owner(id int) int {
	return b.Ownership[id]
}

func (b *Board) SetOwner(id, player int) {
	if !slices.Contains(b.Order, player) {
		panic(fmt.Sprintf("area %d: unknown player %d", id, player))
	}
	b.Ownership[id] = player
}

// CanAttack reports whether the area has dice to spare for a battle.
func (b *Board) CanAttack(id int) bool {
	return b.DiceCounts[id] > 1
}

func (b *Board) Players() []int {
	return b.Order
}

// PlayerAreas returns the IDs of all areas owned by player, ascending.
func (b *Board) PlayerAreas(player int) []int {
	var areas []int
	for id, owner := range b.Ownership {
		if owner == player {
			areas = append(areas, id)
		}
	}
	return areas
}

// PlayerBorder returns the player's areas adjacent to at least one area they do not own.
func (b *Board) PlayerBorder(player int) []int {
	var border []int
	for id, owner := range b.Ownership {
		if owner != player {
			continue
		}
		for _, adj := range b.Map.Areas[id].AdjacentIDs {
			if b.Ownership[adj] != player {
				border = append(border, id)
				break
			}
		}
	}
	return border
}

// Copy deep-copies the mutable state; the map is immutable and shared.
func (b *Board) Copy() *Board {
	return &Board{
		Map:        b.Map,
		DiceCounts: slices.Clone(b.DiceCounts),
		Ownership:  slices.Clone(b.Ownership),
		Order:      slices.Clone(b.Order),
	}
}

func (b *Board) Clone() BoardView {
	return b.Copy()
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Owners: slices.Clone(b.Ownership),
		Dice:   slices.Clone(b.DiceCounts),
	}
}

// Winner returns the player owning every area, or 0 while the game is undecided.
func (b *Board) Winner() int {
	if len(b.Ownership) == 0 {
		return 0
	}
	first := b.Ownership[0]
	for _, owner := range b.Ownership[1:] {
		if owner != first {
			return 0
		}
	}
	return first
}

// Snapshot is the full owner and dice assignment of a board at one instant.
type Snapshot struct {
	Owners []int
	Dice   []int
}

func (s Snapshot) Equal(other Snapshot) bool {
	return slices.Equal(s.Owners, other.Owners) && slices.Equal(s.Dice, other.Dice)
}
