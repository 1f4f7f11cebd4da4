package searcher

import (
	"dicewars/combat"
	"dicewars/game"
	"dicewars/meta"
	"dicewars/planner"

	"github.com/rs/zerolog/log"
)

// Action records the full effect of one simulated command so it can be undone exactly.
type Action struct {
	Type         game.ActionType
	Source       int
	Target       int
	SourceBefore int
	SourceAfter  int
	TargetBefore int
	TargetAfter  int
	OwnerBefore  int // Target owner
	OwnerAfter   int
}

// TurnRecord lists the actions of one simulated turn in execution order.
type TurnRecord []Action

// Simulator plays whole turns on a board the caller owns, driving a fresh planner session per
// turn. Battles are won with the tabulated probability against its random source.
type Simulator struct {
	planner    *planner.Planner
	rules      game.Rules
	random     combat.Random
	maxActions int
}

func NewSimulator(p *planner.Planner, rules game.Rules, rnd combat.Random) *Simulator {
	if p == nil || rules == nil || rnd == nil {
		panic("Simulator requires a planner, rules and a random source")
	}
	return &Simulator{
		planner:    p,
		rules:      rules,
		random:     rnd,
		maxActions: meta.MAX_SIMULATED_ACTIONS,
	}
}

// Simulate plays one turn of player in the given posture, mutating b, and returns the record
// needed by Unsimulate.
func (s *Simulator) Simulate(b game.BoardView, player int, posture planner.Posture) TurnRecord {
	session := planner.NewSession(player)
	session.BeginTurn(posture)

	var record TurnRecord
	for {
		cmd := s.planner.Plan(session, b)
		if cmd.IsEndTurn() {
			return record
		}
		if err := game.Validate(b, player, cmd); err != nil {
			log.Warn().Err(err).Int("player", player).Msg("planner produced an invalid simulated command")
			return record
		}

		record = append(record, s.apply(b, cmd))
		if len(record) >= s.maxActions {
			log.Warn().Int("player", player).Msgf("simulated turn stopped after %d actions", len(record))
			return record
		}
	}
}

func (s *Simulator) apply(b game.BoardView, cmd game.Command) Action {
	action := Action{
		Type:         cmd.Type,
		Source:       cmd.Source,
		Target:       cmd.Target,
		SourceBefore: b.Dice(cmd.Source),
		TargetBefore: b.Dice(cmd.Target),
		OwnerBefore:  b.Owner(cmd.Target),
	}
	action.OwnerAfter = action.OwnerBefore

	switch cmd.Type {
	case game.BattleAction:
		won := s.random.Float64() < combat.WinProbability(action.SourceBefore, action.TargetBefore)
		action.SourceAfter, action.TargetAfter = s.rules.BattleOutcome(action.SourceBefore, action.TargetBefore, won)
		if won {
			action.OwnerAfter = b.Owner(cmd.Source)
		}
	case game.TransferAction:
		action.SourceAfter, action.TargetAfter = s.rules.TransferOutcome(action.SourceBefore, action.TargetBefore)
	default:
		panic("Unexpected action type")
	}

	b.SetDice(cmd.Source, action.SourceAfter)
	b.SetDice(cmd.Target, action.TargetAfter)
	b.SetOwner(cmd.Target, action.OwnerAfter)
	return action
}

// Unsimulate reverts a simulated turn, last action first.
func (s *Simulator) Unsimulate(b game.BoardView, record TurnRecord) {
	for i := len(record) - 1; i >= 0; i-- {
		action := record[i]
		b.SetDice(action.Source, action.SourceBefore)
		b.SetDice(action.Target, action.TargetBefore)
		b.SetOwner(action.Target, action.OwnerBefore)
	}
}
