package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

type Area struct {
	ID          int    // Unique identifier for the area
	Name        string // Display name
	AdjacentIDs []int  // IDs of adjacent areas, kept sorted
}

// Map represents the static game graph, containing all the areas.
type Map struct {
	Areas map[int]*Area // Maps area IDs to Area pointers
}

// NewMap creates and returns a new Map instance.
func NewMap() *Map {
	return &Map{
		Areas: make(map[int]*Area),
	}
}

// AddArea adds a new area to the map.
func (m *Map) AddArea(area *Area) {
	m.Areas[area.ID] = area
}

// AddBorder adds a bidirectional border between two areas.
func (m *Map) AddBorder(id1, id2 int) {
	if id1 == id2 {
		return
	}
	m.Areas[id1].AdjacentIDs = insertSorted(m.Areas[id1].AdjacentIDs, id2)
	m.Areas[id2].AdjacentIDs = insertSorted(m.Areas[id2].AdjacentIDs, id1)
}

// insertSorted adds item to a sorted slice unless it is already present (no duplicate borders)
func insertSorted(slice []int, item int) []int {
	i, found := slices.BinarySearch(slice, item)
	if found {
		return slice
	}
	return slices.Insert(slice, i, item)
}

// AreAdjacent checks if two areas share a border.
func (m *Map) AreAdjacent(id1, id2 int) bool {
	_, found := slices.BinarySearch(m.Areas[id1].AdjacentIDs, id2)
	return found
}

// NewGridMap builds a rows x cols map of hexagonal areas in offset layout:
// every area borders its horizontal neighbours and up to four diagonal neighbours.
func NewGridMap(rows, cols int) *Map {
	if rows <= 0 || cols <= 0 {
		panic("grid map needs at least one row and one column")
	}
	m := NewMap()
	id := func(r, c int) int { return r*cols + c }

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.AddArea(&Area{
				ID:          id(r, c),
				Name:        fmt.Sprintf("%c%d", 'A'+rune(r%26), c+1),
				AdjacentIDs: []int{},
			})
		}
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				m.AddBorder(id(r, c), id(r, c+1))
			}
			if r+1 >= rows {
				continue
			}
			// Odd rows are shifted half an area to the right
			left, right := c-1, c
			if r%2 == 1 {
				left, right = c, c+1
			}
			if left >= 0 {
				m.AddBorder(id(r, c), id(r+1, left))
			}
			if right < cols {
				m.AddBorder(id(r, c), id(r+1, right))
			}
		}
	}
	return m
}

// NewLineMap builds a path graph 0-1-2-...-(n-1). Handy for small scenarios.
func NewLineMap(n int) *Map {
	m := NewMap()
	for i := 0; i < n; i++ {
		m.AddArea(&Area{ID: i, Name: fmt.Sprintf("L%d", i), AdjacentIDs: []int{}})
	}
	for i := 0; i+1 < n; i++ {
		m.AddBorder(i, i+1)
	}
	return m
}
