package planner

import (
	"cmp"

	"dicewars/game"

	"golang.org/x/exp/slices"
)

// possibleAttacks pairs every own border area that can attack with its enemy neighbours and
// its own non-border neighbours. Attacks are ordered by attacker dice, strongest first.
func possibleAttacks(b game.BoardView, player int) []Attack {
	border := b.PlayerBorder(player)
	isBorder := make(map[int]bool, len(border))
	for _, id := range border {
		isBorder[id] = true
	}

	var attacks []Attack
	for _, id := range border {
		if !b.CanAttack(id) {
			continue
		}
		attack := Attack{Attacker: Strength{ID: id, Dice: b.Dice(id)}}
		for _, adj := range b.Adjacent(id) {
			neighbour := Strength{ID: adj, Dice: b.Dice(adj)}
			if b.Owner(adj) != player {
				attack.Defenders = append(attack.Defenders, neighbour)
			} else if !isBorder[adj] {
				attack.Helpers = append(attack.Helpers, neighbour)
			}
		}
		slices.SortFunc(attack.Defenders, byDiceDesc)
		slices.SortFunc(attack.Helpers, byDiceDesc)
		attacks = append(attacks, attack)
	}

	slices.SortStableFunc(attacks, func(a, b Attack) int {
		return cmp.Compare(b.Attacker.Dice, a.Attacker.Dice)
	})
	return attacks
}

// selectAttack walks the candidate attacks and commits to the first one that is likely won and
// can be held, possibly with helper transfers queued before or after the battle.
func (p *Planner) selectAttack(b game.BoardView, player, budget int) (attackPlan, bool) {
	for _, attack := range possibleAttacks(b, player) {
		target := attack.Defenders[0]
		plan := attackPlan{Source: attack.Attacker.ID, Target: target.ID}

		if !p.model.Decide(attack.Attacker.Dice, target.Dice) {
			before, after, ok := p.helpingAttackPath(b, player, attack, budget, nil, false)
			if !ok {
				continue
			}
			plan.Before, plan.After = before, after
			return plan, true
		}

		after, kept := p.keepArea(b, player, attack, map[int]bool{attack.Attacker.ID: true}, budget)
		if !kept {
			continue
		}
		if _, threatened := p.futureThreat(b, player, attack.Attacker.Dice, target); !threatened {
			plan.After = after
			return plan, true
		}

		before, after, ok := p.helpingAttackPath(b, player, attack, budget-len(after), after, true)
		if !ok {
			continue
		}
		plan.Before, plan.After = before, after
		return plan, true
	}
	return attackPlan{}, false
}

// helpingAttackPath looks for transfers that strengthen the attacker before the battle. The
// strongest direct helper is tried first together with the hold and threat checks; failing that
// the recursive helper search makes the battle likely and, with hold set, also leaves the capture
// safe from its strongest enemy neighbour. after is returned unchanged unless the direct helper
// produced a new one.
func (p *Planner) helpingAttackPath(b game.BoardView, player int, attack Attack, budget int, after Chain, hold bool) (Chain, Chain, bool) {
	if budget <= 0 || len(attack.Helpers) == 0 {
		return nil, nil, false
	}

	target := attack.Defenders[0]
	helper := attack.Helpers[0]
	boosted := min(attack.Attacker.Dice+helper.Dice-1, game.MaxDice)
	if helper.Dice > 1 && p.model.Decide(boosted, target.Dice) {
		visited := map[int]bool{attack.Attacker.ID: true, helper.ID: true}
		kept, ok := p.keepArea(b, player, attack.withoutHelper(helper.ID), visited, budget-1)
		if ok {
			if _, threatened := p.futureThreat(b, player, boosted, target); !threatened {
				return Chain{{Source: helper.ID, Target: attack.Attacker.ID}}, kept, true
			}
		}
	}

	visited := map[int]bool{attack.Attacker.ID: true}
	var chain Chain
	if hold {
		chain = p.holdingAttackHelperPath(b, player, attack.Attacker, visited, target, budget)
	} else {
		chain = p.attackHelperPath(b, player, attack.Attacker, attack.Attacker.Dice, visited, target, budget)
	}
	if len(chain) == 0 {
		return nil, nil, false
	}
	return chain, after, true
}

// futureThreat returns the strongest enemy around the defender that would outgun the dice left in
// the captured area after a won battle.
func (p *Planner) futureThreat(b game.BoardView, player, attackerDice int, defender Strength) (Strength, bool) {
	var (
		strongest Strength
		found     bool
	)
	for _, adj := range b.Adjacent(defender.ID) {
		if b.Owner(adj) == player || b.Dice(adj) == 1 {
			continue
		}
		if !found || strongest.Dice < b.Dice(adj) {
			strongest = Strength{ID: adj, Dice: b.Dice(adj)}
			found = true
		}
	}

	if found && (attackerDice-1)-strongest.Dice < -p.cfg.ThreatMargin {
		return strongest, true
	}
	return Strength{}, false
}

// keepArea checks whether the attacker, left with a single die after the battle, can be held
// against the second strongest enemy around it. The returned chain reinforces the attacker once
// the battle has been fought.
func (p *Planner) keepArea(b game.BoardView, player int, attack Attack, visited map[int]bool, budget int) (Chain, bool) {
	if len(attack.Defenders) <= 1 {
		return nil, true
	}
	second := attack.Defenders[1]
	if second.Dice == 1 {
		return nil, true
	}
	if budget <= 0 || len(attack.Helpers) == 0 {
		return nil, false
	}

	helper := attack.Helpers[0]
	if helper.Dice > 1 && helper.Dice-second.Dice >= -p.cfg.ThreatMargin {
		return Chain{{Source: helper.ID, Target: attack.Attacker.ID}}, true
	}

	survivor := Strength{ID: attack.Attacker.ID, Dice: 1}
	chain := p.defenseHelperPath(b, player, survivor, 1, visited, second, budget)
	return chain, len(chain) > 0
}
