// Package planner turns a board into one command at a time. Each turn runs through an attack,
// a defence and a transfer stage; moves decided together are queued on the player's Session and
// emitted on later calls.
package planner

import (
	"fmt"

	"dicewars/game"
	"dicewars/meta"
	"dicewars/utils"

	"github.com/rs/zerolog/log"
)

// Decider answers whether a battle between the given dice counts is worth fighting.
// *combat.Model is the production implementation.
type Decider interface {
	Decide(attackerDice, defenderDice int) bool
}

type Config struct {
	MaxTransfers    int // Transfers allowed per turn
	AttackTransfers int // Share of MaxTransfers that attack helper chains may use
	ThreatMargin    int // Dice an enemy may be ahead before it counts as a threat
	MaxMoves        int // Commands per turn before the planner ends the turn regardless
}

func DefaultConfig() Config {
	return Config{
		MaxTransfers:    meta.MAX_TRANSFERS,
		AttackTransfers: meta.ATTACK_TRANSFERS,
		ThreatMargin:    meta.THREAT_MARGIN,
		MaxMoves:        meta.MAX_MOVES_PER_TURN,
	}
}

func (c Config) Validate() error {
	if c.MaxTransfers < 0 {
		return fmt.Errorf("max transfers must not be negative, got %d", c.MaxTransfers)
	}
	if c.AttackTransfers < 0 {
		return fmt.Errorf("attack transfers must not be negative, got %d", c.AttackTransfers)
	}
	if c.ThreatMargin < 0 {
		return fmt.Errorf("threat margin must not be negative, got %d", c.ThreatMargin)
	}
	if c.MaxMoves <= 0 {
		return fmt.Errorf("max moves must be positive, got %d", c.MaxMoves)
	}
	return nil
}

type Planner struct {
	cfg   Config
	model Decider
}

func New(cfg Config, model Decider) *Planner {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	if model == nil {
		panic("Planner requires a combat model")
	}
	return &Planner{cfg: cfg, model: model}
}

func (p *Planner) Config() Config {
	return p.cfg
}

// Plan returns the next command of the session's player. Queued moves from earlier calls are
// emitted first, then the current stage plans afresh. A session without a turn in progress
// starts a full turn.
func (p *Planner) Plan(s *Session, b game.BoardView) game.Command {
	if !s.inTurn {
		s.BeginTurn(FullTurn)
	}
	if s.posture == Pass || s.moves >= p.cfg.MaxMoves {
		return p.endTurn(s)
	}

	if cmd, ok := p.drain(s, b); ok {
		return cmd
	}

	if s.stage == AttackStage {
		if plan, ok := p.selectAttack(b, s.Player, p.attackBudget(s)); ok {
			log.Debug().Int("player", s.Player).Msgf("attack %d->%d, %d transfers before, %d after",
				plan.Source, plan.Target, len(plan.Before), len(plan.After))
			s.after = plan.After
			battle := game.Battle(plan.Source, plan.Target)
			if len(plan.Before) > 0 {
				s.before = plan.Before[1:]
				s.battle = &battle
				return p.emit(s, plan.Before[0].Command())
			}
			return p.emit(s, battle)
		}
		s.stage = DefendStage
	}

	if s.stage == DefendStage {
		if chain := p.defenseChain(b, s.Player, p.budget(s)); len(chain) > 0 {
			log.Debug().Int("player", s.Player).Msgf("defence chain %v", chain)
			s.defense = chain[1:]
			return p.emit(s, chain[0].Command())
		}
		s.stage = TransferStage
	}

	if hop, ok := p.transferMove(b, s.Player, p.budget(s)); ok {
		return p.emit(s, hop.Command())
	}
	return p.endTurn(s)
}

// drain emits the next still valid queued move. Moves invalidated by the board are dropped
// together with everything that depended on them.
func (p *Planner) drain(s *Session, b game.BoardView) (game.Command, bool) {
	for len(s.before) > 0 {
		hop := s.before[0]
		if err := p.check(s, b, hop.Command()); err != nil {
			log.Debug().Err(err).Int("player", s.Player).Msg("dropping attack preparation")
			s.before, s.battle, s.after = nil, nil, nil
			break
		}
		s.before = s.before[1:]
		return p.emit(s, hop.Command()), true
	}

	if s.battle != nil {
		battle := *s.battle
		s.battle = nil
		err := p.check(s, b, battle)
		if err == nil {
			return p.emit(s, battle), true
		}
		log.Debug().Err(err).Int("player", s.Player).Msg("dropping queued battle")
		s.after = nil
	}

	for _, queue := range []*Chain{&s.after, &s.defense} {
		if len(*queue) == 0 {
			continue
		}
		hop := (*queue)[0]
		if err := p.check(s, b, hop.Command()); err != nil {
			log.Debug().Err(err).Int("player", s.Player).Msg("dropping queued transfers")
			*queue = nil
			continue
		}
		*queue = (*queue)[1:]
		return p.emit(s, hop.Command()), true
	}
	return game.Command{}, false
}

func (p *Planner) check(s *Session, b game.BoardView, cmd game.Command) error {
	if cmd.Type == game.TransferAction && s.transfers >= p.cfg.MaxTransfers {
		return fmt.Errorf("%v: transfer budget of %d exhausted", cmd, p.cfg.MaxTransfers)
	}
	return game.Validate(b, s.Player, cmd)
}

func (p *Planner) emit(s *Session, cmd game.Command) game.Command {
	s.moves++
	if cmd.Type == game.TransferAction {
		s.transfers++
	}
	return cmd
}

func (p *Planner) endTurn(s *Session) game.Command {
	log.Debug().Int("player", s.Player).Int("moves", s.moves).Int("transfers", s.transfers).Msg("end turn")
	s.EndTurn()
	return game.EndTurn()
}

func (p *Planner) attackBudget(s *Session) int {
	return utils.Clamp(p.cfg.AttackTransfers-s.transfers, 0, p.budget(s))
}

func (p *Planner) budget(s *Session) int {
	return max(p.cfg.MaxTransfers-s.transfers, 0)
}
