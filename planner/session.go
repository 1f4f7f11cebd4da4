package planner

import (
	"dicewars/game"

	"github.com/google/uuid"
)

type Stage int

const (
	AttackStage Stage = iota
	DefendStage
	TransferStage
)

func (s Stage) String() string {
	switch s {
	case AttackStage:
		return "attack"
	case DefendStage:
		return "defend"
	default:
		return "transfer"
	}
}

// Posture is the turn archetype chosen once at the start of a real turn.
type Posture int

const (
	FullTurn Posture = iota
	DefendOnly
	Pass
)

// Postures lists every posture in the order the searchers evaluate them.
var Postures = []Posture{FullTurn, DefendOnly, Pass}

func (p Posture) String() string {
	switch p {
	case FullTurn:
		return "full"
	case DefendOnly:
		return "defend"
	default:
		return "pass"
	}
}

// Session is the planning state of one player for the length of a match. The planner emits one
// command per call and picks up queued moves from the session on the next call.
type Session struct {
	ID     uuid.UUID
	Player int

	stage   Stage
	posture Posture
	inTurn  bool

	before  Chain         // Transfers reinforcing the pending battle
	battle  *game.Command // Battle committed after its helpers
	after   Chain         // Transfers securing the attacker once the battle is fought
	defense Chain         // Transfers reinforcing an endangered area

	moves     int
	transfers int
}

func NewSession(player int) *Session {
	return &Session{
		ID:     uuid.New(),
		Player: player,
		stage:  AttackStage,
	}
}

// BeginTurn starts a real or simulated turn in the given posture.
func (s *Session) BeginTurn(posture Posture) {
	s.posture = posture
	s.inTurn = true
	s.moves = 0
	s.transfers = 0
	s.clearQueues()

	if posture == DefendOnly {
		s.stage = DefendStage
	} else {
		s.stage = AttackStage
	}
}

// EndTurn resets the session for the player's next turn.
func (s *Session) EndTurn() {
	s.inTurn = false
	s.stage = AttackStage
	s.clearQueues()
}

func (s *Session) clearQueues() {
	s.before = nil
	s.battle = nil
	s.after = nil
	s.defense = nil
}

// InTurn is false until the first command of a turn has been requested.
func (s *Session) InTurn() bool {
	return s.inTurn
}

func (s *Session) Stage() Stage {
	return s.stage
}

func (s *Session) Posture() Posture {
	return s.posture
}

// Transfers returns the number of transfers emitted so far this turn.
func (s *Session) Transfers() int {
	return s.transfers
}

// Moves returns the number of commands emitted so far this turn, end of turn excluded.
func (s *Session) Moves() int {
	return s.moves
}

// Pending reports whether queued moves are waiting to be emitted.
func (s *Session) Pending() bool {
	return len(s.before) > 0 || s.battle != nil || len(s.after) > 0 || len(s.defense) > 0
}
