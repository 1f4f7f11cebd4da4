package planner

import (
	"cmp"

	"dicewars/game"
	"dicewars/paths"

	"golang.org/x/exp/slices"
)

// byDiceDesc orders strengths by descending dice, ties by ascending ID
func byDiceDesc(a, b Strength) int {
	if a.Dice != b.Dice {
		return cmp.Compare(b.Dice, a.Dice)
	}
	return cmp.Compare(a.ID, b.ID)
}

// helpers returns the own, non-border, unvisited neighbours of focal, strongest first.
func helpers(b game.BoardView, focal int, visited map[int]bool, player int) []Strength {
	var found []Strength
	for _, adj := range b.Adjacent(focal) {
		if b.Owner(adj) != player || visited[adj] {
			continue
		}
		if paths.IsBorder(b, adj, player) {
			continue
		}
		found = append(found, Strength{ID: adj, Dice: b.Dice(adj)})
	}
	slices.SortFunc(found, byDiceDesc)
	return found
}

// with returns a copy of visited that also contains id
func with(visited map[int]bool, id int) map[int]bool {
	next := make(map[int]bool, len(visited)+1)
	for k := range visited {
		next[k] = true
	}
	next[id] = true
	return next
}

// defenseHelperPath looks for transfers that raise focal, currently worth accumulated dice,
// to within ThreatMargin of threat. The chain never revisits an area and is at most budget long.
func (p *Planner) defenseHelperPath(b game.BoardView, player int, focal Strength, accumulated int, visited map[int]bool, threat Strength, budget int) Chain {
	sufficient := func(total int) bool {
		return total-threat.Dice >= -p.cfg.ThreatMargin
	}
	return p.helperPath(b, player, focal, accumulated, visited, budget, sufficient)
}

// attackHelperPath looks for transfers that make focal, currently worth accumulated dice,
// strong enough that the combat model would attack defender.
func (p *Planner) attackHelperPath(b game.BoardView, player int, focal Strength, accumulated int, visited map[int]bool, defender Strength, budget int) Chain {
	sufficient := func(total int) bool {
		return p.model.Decide(min(total, game.MaxDice), defender.Dice)
	}
	return p.helperPath(b, player, focal, accumulated, visited, budget, sufficient)
}

// holdingAttackHelperPath is attackHelperPath for a capture that must also survive the strongest
// enemy around the defender.
func (p *Planner) holdingAttackHelperPath(b game.BoardView, player int, focal Strength, visited map[int]bool, defender Strength, budget int) Chain {
	sufficient := func(total int) bool {
		dice := min(total, game.MaxDice)
		if !p.model.Decide(dice, defender.Dice) {
			return false
		}
		_, threatened := p.futureThreat(b, player, dice, defender)
		return !threatened
	}
	return p.helperPath(b, player, focal, focal.Dice, visited, budget, sufficient)
}

func (p *Planner) helperPath(b game.BoardView, player int, focal Strength, accumulated int, visited map[int]bool, budget int, sufficient func(int) bool) Chain {
	if budget <= 0 {
		return nil
	}

	for _, helper := range helpers(b, focal.ID, visited, player) {
		// One die always stays behind in the helper
		total := accumulated + helper.Dice - 1
		if helper.Dice > 1 && sufficient(total) {
			return Chain{{Source: helper.ID, Target: focal.ID}}
		}

		// Relaying through the helper needs at least two transfers
		if budget <= 1 {
			continue
		}
		chain := p.helperPath(b, player, helper, total, with(visited, helper.ID), budget-1, sufficient)
		if len(chain) == 0 {
			continue
		}
		return append(chain, Hop{Source: helper.ID, Target: focal.ID})
	}
	return nil
}
