package game

import "fmt"

// Command is a single action sent to the turn executor.
// Source and Target are unused for EndTurn.
type Command struct {
	Type   ActionType
	Source int
	Target int
}

func Battle(source, target int) Command {
	return Command{Type: BattleAction, Source: source, Target: target}
}

func Transfer(source, target int) Command {
	return Command{Type: TransferAction, Source: source, Target: target}
}

func EndTurn() Command {
	return Command{Type: EndTurnAction}
}

func (c Command) IsEndTurn() bool {
	return c.Type == EndTurnAction
}

func (c Command) String() string {
	if c.Type == EndTurnAction {
		return "EndTurn()"
	}
	if c.Type == BattleAction {
		return fmt.Sprintf("Battle(%d, %d)", c.Source, c.Target)
	}
	return fmt.Sprintf("Transfer(%d, %d)", c.Source, c.Target)
}

// Validate checks a command against the board on behalf of player.
func Validate(b BoardView, player int, c Command) error {
	switch c.Type {
	case EndTurnAction:
		return nil
	case BattleAction, TransferAction:
	default:
		return fmt.Errorf("unknown action type %d", c.Type)
	}

	n := b.NumAreas()
	if c.Source < 0 || c.Source >= n || c.Target < 0 || c.Target >= n {
		return fmt.Errorf("%v: area out of range", c)
	}
	if b.Owner(c.Source) != player {
		return fmt.Errorf("%v: source area is not owned by player %d", c, player)
	}
	if !isAdjacent(b, c.Source, c.Target) {
		return fmt.Errorf("%v: areas are not adjacent", c)
	}
	if !b.CanAttack(c.Source) {
		return fmt.Errorf("%v: source area has a single die", c)
	}

	if c.Type == BattleAction {
		if b.Owner(c.Target) == player {
			return fmt.Errorf("%v: target area is owned by the same player", c)
		}
		return nil
	}
	if b.Owner(c.Target) != player {
		return fmt.Errorf("%v: target area is not owned by player %d", c, player)
	}
	if b.Dice(c.Target) >= MaxDice {
		return fmt.Errorf("%v: target area is full", c)
	}
	return nil
}

func isAdjacent(b BoardView, id1, id2 int) bool {
	for _, adj := range b.Adjacent(id1) {
		if adj == id2 {
			return true
		}
	}
	return false
}
