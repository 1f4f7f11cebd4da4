package agent

import (
	"fmt"

	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/planner"
	"dicewars/searcher"

	"github.com/rs/zerolog/log"
)

// Player is what the engine asks for commands. Turn is called once per command until it
// returns an end of turn; EndTurn is called whenever the engine closes the turn, including
// when it rejects a command.
type Player interface {
	Name() string
	Turn(b game.BoardView) game.Command
	EndTurn()
}

// Agent plays one seat. On the first command of a real turn it runs the posture search, then
// replays the planner in that posture until the turn ends.
type Agent struct {
	name     string
	session  *planner.Session
	planner  *planner.Planner
	searcher searcher.Searcher
	metric   metrics.SearchMetric
}

// NewAgent returns an agent for player. A nil searcher always plays full turns.
func NewAgent(player int, p *planner.Planner, s searcher.Searcher) *Agent {
	if p == nil {
		panic("Agent requires a planner")
	}
	return &Agent{
		name:     fmt.Sprintf("Player%d", player),
		session:  planner.NewSession(player),
		planner:  p,
		searcher: s,
	}
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Player() int {
	return a.session.Player
}

func (a *Agent) Turn(b game.BoardView) game.Command {
	if !a.session.InTurn() {
		posture := planner.FullTurn
		a.metric = metrics.SearchMetric{Posture: posture.String()}
		if a.searcher != nil {
			posture, a.metric = a.searcher.SelectPosture(b, a.session.Player)
		}
		log.Debug().Str("agent", a.name).Str("session", a.session.ID.String()).Msgf("playing %v turn", posture)
		a.session.BeginTurn(posture)
	}
	return a.planner.Plan(a.session, b)
}

// EndTurn drops whatever the planner still had queued for this turn.
func (a *Agent) EndTurn() {
	a.session.EndTurn()
}

// LastMetrics returns the metrics of the most recent posture search.
func (a *Agent) LastMetrics() metrics.SearchMetric {
	return a.metric
}
