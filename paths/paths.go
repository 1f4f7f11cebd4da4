// Package paths answers breadth-first questions about the areas one player owns.
package paths

import (
	"dicewars/game"

	"golang.org/x/exp/slices"
)

// NotFound is returned when no border or no path exists.
const NotFound = -1

// IsBorder reports whether the area touches at least one area not owned by owner.
func IsBorder(b game.BoardView, id, owner int) bool {
	for _, adj := range b.Adjacent(id) {
		if b.Owner(adj) != owner {
			return true
		}
	}
	return false
}

// DistanceToBorder returns the number of hops from id to the nearest border area of owner,
// walking only through owner's areas. It is 0 when id is itself a border area and NotFound
// when the owned component has no border at all.
func DistanceToBorder(b game.BoardView, id, owner int) int {
	if IsBorder(b, id, owner) {
		return 0
	}

	visited := map[int]bool{id: true}
	frontier := []int{id}
	for distance := 1; len(frontier) > 0; distance++ {
		var next []int
		for _, current := range frontier {
			for _, adj := range b.Adjacent(current) {
				if visited[adj] || b.Owner(adj) != owner {
					continue
				}
				if IsBorder(b, adj, owner) {
					return distance
				}
				visited[adj] = true
				next = append(next, adj)
			}
		}
		frontier = next
	}
	return NotFound
}

// ShortestPath returns the areas from src to dst inclusive and the number of hops, moving only
// through owner's areas. With avoidBorders no intermediate area may touch an enemy; the
// destination is exempt. Unreachable destinations give (nil, NotFound).
func ShortestPath(b game.BoardView, src, dst, owner int, avoidBorders bool) ([]int, int) {
	if b.Owner(src) != owner || b.Owner(dst) != owner {
		return nil, NotFound
	}
	if src == dst {
		return []int{src}, 0
	}

	previous := map[int]int{src: src}
	queue := []int{src}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, adj := range b.Adjacent(current) {
			if _, seen := previous[adj]; seen {
				continue
			}
			if b.Owner(adj) != owner {
				continue
			}
			if adj == dst {
				previous[adj] = current
				path := backtrack(previous, src, dst)
				return path, len(path) - 1
			}
			if avoidBorders && IsBorder(b, adj, owner) {
				continue
			}
			previous[adj] = current
			queue = append(queue, adj)
		}
	}
	return nil, NotFound
}

// backtrack rebuilds the path from the predecessor links
func backtrack(previous map[int]int, src, dst int) []int {
	path := []int{dst}
	for step := dst; step != src; {
		step = previous[step]
		path = append(path, step)
	}
	slices.Reverse(path)
	return path
}
