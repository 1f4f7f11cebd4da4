package game

// ActionType represents the kind of command a player can issue.
type ActionType int

const (
	EndTurnAction ActionType = iota
	BattleAction
	TransferAction
)

func (a ActionType) String() string {
	switch a {
	case BattleAction:
		return "battle"
	case TransferAction:
		return "transfer"
	default:
		return "end_turn"
	}
}
