package planner

import (
	"cmp"

	"dicewars/game"
	"dicewars/paths"

	"golang.org/x/exp/slices"
)

// safety scores a border area by its dice plus half the dice of its own neighbours
func safety(b game.BoardView, player, id int) float64 {
	score := float64(b.Dice(id))
	neighbours := 0
	for _, adj := range b.Adjacent(id) {
		if b.Owner(adj) == player {
			neighbours += b.Dice(adj)
		}
	}
	return score + 0.5*float64(neighbours)
}

// transferMove picks one transfer that moves dice from enclosed areas towards the weakest border
// areas. The first viable candidate is held back and compared against the second; the source with
// more dice wins. Without any candidate it falls back to the first step of a defence chain.
func (p *Planner) transferMove(b game.BoardView, player, budget int) (Hop, bool) {
	if budget <= 0 {
		return Hop{}, false
	}

	all := b.PlayerAreas(player)
	border := b.PlayerBorder(player)
	enclosed := slices.DeleteFunc(slices.Clone(all), func(id int) bool {
		return slices.Contains(border, id)
	})

	scores := make(map[int]float64, len(border))
	for _, id := range border {
		scores[id] = safety(b, player, id)
	}
	border = slices.Clone(border)
	slices.SortStableFunc(border, func(x, y int) int {
		return cmp.Compare(scores[x], scores[y])
	})

	// Small territories pull dice forward from deep inside, large ones reinforce from close by
	farFirst := len(all) < b.NumAreas()/2
	distances := make(map[int]int, len(enclosed))
	for _, id := range enclosed {
		distances[id] = paths.DistanceToBorder(b, id, player)
	}
	slices.SortStableFunc(enclosed, func(x, y int) int {
		if farFirst {
			return cmp.Compare(distances[y], distances[x])
		}
		return cmp.Compare(distances[x], distances[y])
	})

	var (
		deferred     Hop
		deferredDice int
	)
	for _, target := range border {
		for _, source := range enclosed {
			if b.Dice(source) == 1 {
				continue
			}
			path, distance := paths.ShortestPath(b, source, target, player, true)
			if distance == paths.NotFound || b.Dice(path[1]) == game.MaxDice {
				continue
			}

			hop := Hop{Source: path[0], Target: path[1]}
			if deferredDice == 0 {
				deferred, deferredDice = hop, b.Dice(source)
				continue
			}
			if deferredDice < b.Dice(source) {
				return hop, true
			}
			return deferred, true
		}
	}

	if deferredDice > 0 {
		return deferred, true
	}
	return p.defenseTransfer(b, player, budget)
}

// defenseTransfer returns the first hop of the most urgent defence chain.
func (p *Planner) defenseTransfer(b game.BoardView, player, budget int) (Hop, bool) {
	if chain := p.defenseChain(b, player, budget); len(chain) > 0 {
		return chain[0], true
	}
	return Hop{}, false
}
