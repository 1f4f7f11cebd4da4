package game

// Rules resolves the effect of battles and transfers on dice counts.
type Rules interface {
	MaxDicePerArea() int
	MaxTransfersPerTurn() int
	// BattleOutcome returns the dice left in the attacking and the defending area.
	// On a win the defending area changes hands and holds the attacker's moved dice.
	BattleOutcome(attackerDice, defenderDice int, won bool) (attackerAfter, defenderAfter int)
	// TransferOutcome returns the dice left in both areas after moving as many dice as fit.
	TransferOutcome(sourceDice, targetDice int) (sourceAfter, targetAfter int)
}
