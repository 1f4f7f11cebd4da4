package game

import (
	"fmt"

	"dicewars/meta"

	"golang.org/x/exp/rand"
)

type StandardRules struct {
	MaxDice      int
	Wear         int // A lost battle costs the defender attackerDice/Wear dice
	MaxTransfers int
}

func NewStandardRules() *StandardRules {
	return NewRules(meta.MAX_TRANSFERS)
}

// NewRules returns the standard rules with a different cap on transfers per turn.
func NewRules(maxTransfers int) *StandardRules {
	if maxTransfers < 0 {
		panic(fmt.Sprintf("max transfers must not be negative, got %d", maxTransfers))
	}
	return &StandardRules{
		MaxDice:      MaxDice,
		Wear:         4,
		MaxTransfers: maxTransfers,
	}
}

func (sr *StandardRules) MaxDicePerArea() int {
	return sr.MaxDice
}

func (sr *StandardRules) MaxTransfersPerTurn() int {
	return sr.MaxTransfers
}

func (sr *StandardRules) BattleOutcome(attackerDice, defenderDice int, won bool) (attackerAfter, defenderAfter int) {
	// Regardless of the outcome, one die stays behind
	if won {
		return 1, attackerDice - 1
	}
	return 1, max(1, defenderDice-attackerDice/sr.Wear)
}

func (sr *StandardRules) TransferOutcome(sourceDice, targetDice int) (sourceAfter, targetAfter int) {
	moved := min(sr.MaxDice-targetDice, sourceDice-1)
	if moved < 0 {
		moved = 0
	}
	return sourceDice - moved, targetDice + moved
}

// RollBattle throws one six-sided die per unit on each side; the attacker wins
// with a strictly higher sum.
func RollBattle(attackerDice, defenderDice int, rnd *rand.Rand) bool {
	return rollSum(attackerDice, rnd) > rollSum(defenderDice, rnd)
}

func rollSum(num int, rnd *rand.Rand) int {
	sum := 0
	for i := 0; i < num; i++ {
		sum += rnd.Intn(6) + 1
	}
	return sum
}
