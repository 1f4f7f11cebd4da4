// Package combat models the odds of a battle and turns them into attack decisions.
package combat

import "fmt"

const (
	MinAttackerDice = 2
	MinDefenderDice = 1
	MaxDice         = 8
)

// winTable[atk][df] is the chance that the sum of atk six-sided dice beats the sum of df dice.
var winTable = [MaxDice + 1][MaxDice + 1]float64{
	2: {1: 0.83796296, 2: 0.44367284, 3: 0.15200617, 4: 0.03587963, 5: 0.00610497, 6: 0.00076625, 7: 0.00007095, 8: 0.00000473},
	3: {1: 0.97299383, 2: 0.77854938, 3: 0.45357510, 4: 0.19170096, 5: 0.06071269, 6: 0.01487860, 7: 0.00288998, 8: 0.00045192},
	4: {1: 0.99729938, 2: 0.93923611, 3: 0.74283050, 4: 0.45952825, 5: 0.22044235, 6: 0.08342284, 7: 0.02544975, 8: 0.00637948},
	5: {1: 0.99984997, 2: 0.98794010, 3: 0.90934714, 4: 0.71807842, 5: 0.46365360, 6: 0.24244910, 7: 0.10362599, 8: 0.03674187},
	6: {1: 0.99999643, 2: 0.99821685, 3: 0.97529981, 4: 0.88395347, 5: 0.69961639, 6: 0.46673060, 7: 0.25998382, 8: 0.12150697},
	7: {1: 1.00000000, 2: 0.99980134, 3: 0.99466336, 4: 0.96153588, 5: 0.86237652, 6: 0.68516499, 7: 0.46913917, 8: 0.27437553},
	8: {1: 1.00000000, 2: 0.99998345, 3: 0.99906917, 4: 0.98953404, 5: 0.94773146, 6: 0.84387382, 7: 0.67345564, 8: 0.47109073},
}

// WinProbability returns the precomputed chance of the attacker winning.
// Dice counts outside the table are a caller bug and panic.
func WinProbability(attackerDice, defenderDice int) float64 {
	if attackerDice < MinAttackerDice || attackerDice > MaxDice {
		panic(fmt.Sprintf("attacker dice %d out of range [%d, %d]", attackerDice, MinAttackerDice, MaxDice))
	}
	if defenderDice < MinDefenderDice || defenderDice > MaxDice {
		panic(fmt.Sprintf("defender dice %d out of range [%d, %d]", defenderDice, MinDefenderDice, MaxDice))
	}
	return winTable[attackerDice][defenderDice]
}
