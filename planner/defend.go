package planner

import (
	"cmp"

	"dicewars/game"

	"golang.org/x/exp/slices"
)

// endangeredAreas lists own border areas below full strength that the strongest able enemy
// neighbour would likely take. The most urgent areas come first.
func (p *Planner) endangeredAreas(b game.BoardView, player int) []endangered {
	var found []endangered
	for _, id := range b.PlayerBorder(player) {
		dice := b.Dice(id)
		if dice == game.MaxDice {
			continue
		}

		var enemies []Strength
		for _, adj := range b.Adjacent(id) {
			if b.Owner(adj) == player {
				continue
			}
			enemy := b.Dice(adj)
			if enemy > 1 && p.model.Decide(enemy, dice) {
				enemies = append(enemies, Strength{ID: adj, Dice: enemy})
			}
		}
		if len(enemies) == 0 {
			continue
		}

		slices.SortFunc(enemies, byDiceDesc)
		found = append(found, endangered{Area: Strength{ID: id, Dice: dice}, Enemy: enemies[0]})
	}

	slices.SortStableFunc(found, func(a, b endangered) int {
		return cmp.Compare(a.Area.Dice-a.Enemy.Dice, b.Area.Dice-b.Enemy.Dice)
	})
	return found
}

// defenseChain returns the helper chain of the most urgent endangered area that can be helped.
func (p *Planner) defenseChain(b game.BoardView, player, budget int) Chain {
	for _, e := range p.endangeredAreas(b, player) {
		visited := map[int]bool{e.Area.ID: true}
		chain := p.defenseHelperPath(b, player, e.Area, e.Area.Dice, visited, e.Enemy, budget)
		if len(chain) > 0 {
			return chain
		}
	}
	return nil
}
