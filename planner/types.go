package planner

import (
	"fmt"

	"dicewars/game"
)

// Strength is an area together with its dice count at planning time.
type Strength struct {
	ID   int
	Dice int
}

// Hop is a single transfer between two adjacent own areas.
type Hop struct {
	Source int
	Target int
}

func (h Hop) Command() game.Command {
	return game.Transfer(h.Source, h.Target)
}

func (h Hop) String() string {
	return fmt.Sprintf("%d->%d", h.Source, h.Target)
}

// Chain is a sequence of transfers in execution order.
type Chain []Hop

// Areas lists every area the chain touches, in order of first appearance.
func (c Chain) Areas() []int {
	var areas []int
	seen := make(map[int]bool)
	for _, hop := range c {
		for _, id := range []int{hop.Source, hop.Target} {
			if !seen[id] {
				seen[id] = true
				areas = append(areas, id)
			}
		}
	}
	return areas
}

// Attack is a candidate battle: an own border area with its enemy neighbours and the
// own non-border neighbours that could send it dice. Both lists are sorted by descending dice.
type Attack struct {
	Attacker  Strength
	Defenders []Strength
	Helpers   []Strength
}

// withoutHelper returns a copy of the attack that no longer counts id as a helper.
func (a Attack) withoutHelper(id int) Attack {
	helpers := make([]Strength, 0, len(a.Helpers))
	for _, h := range a.Helpers {
		if h.ID != id {
			helpers = append(helpers, h)
		}
	}
	a.Helpers = helpers
	return a
}

// attackPlan is a committed battle with the transfers to run before and after it.
type attackPlan struct {
	Source int
	Target int
	Before Chain
	After  Chain
}

// endangered pairs an own border area with the strongest enemy neighbour able to take it.
type endangered struct {
	Area  Strength
	Enemy Strength
}
