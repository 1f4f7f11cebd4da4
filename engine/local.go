package engine

import (
	"time"

	"dicewars/agent"
	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/meta"
	"dicewars/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// metricsReporter is implemented by players that search before their turn
type metricsReporter interface {
	LastMetrics() metrics.SearchMetric
}

// Local is the authoritative game loop used by experiments and integration tests. It owns the
// board and resolves battles with real dice rolls.
type Local struct {
	Board    *game.Board
	Agents   []agent.Player // In the board's player order
	Rules    game.Rules
	MaxTurns int

	random  *rand.Rand
	reserve map[int]int // Dice that did not fit on the board, per player
}

func LocalEngine(agents []agent.Player, board *game.Board, rules game.Rules, rnd *rand.Rand) *Local {
	if len(board.Players()) != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(agents) < 2 {
		panic("need at least two players")
	}
	return &Local{
		Board:    board,
		Agents:   agents,
		Rules:    rules,
		MaxTurns: meta.MAX_TURNS,
		random:   rnd,
		reserve:  make(map[int]int),
	}
}

// Run executes the entire game loop until a winner is found.
func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.Players()[0],
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("player %d is starting", gameMetric.StartingPlayer)

	turn := 1
	for ; e.Board.Winner() == 0 && turn <= e.MaxTurns; turn++ {
		for i, player := range e.Board.Players() {
			if len(e.Board.PlayerAreas(player)) == 0 {
				continue
			}
			moves := e.playTurn(turn, player, e.Agents[i])
			gameMetric.TotalMoves += len(moves)
			moveMetrics = append(moveMetrics, moves...)

			if e.Board.Winner() != 0 {
				break
			}
			e.reinforce(player)
		}
	}

	gameMetric.Winner = e.Board.Winner()
	gameMetric.TotalTurns = turn - 1
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)

	if gameMetric.Winner != 0 {
		log.Info().Msgf("game ended after %d turns with winner %d", gameMetric.TotalTurns, gameMetric.Winner)
	} else {
		log.Info().Msgf("stopped after %d turns without a winner", e.MaxTurns)
	}
	return gameMetric.Winner, gameMetric, moveMetrics
}

// playTurn asks the player for commands until it ends the turn or issues a command the rules
// reject. Every accepted command is recorded.
func (e *Local) playTurn(turn, player int, p agent.Player) []metrics.MoveMetric {
	defer p.EndTurn()

	var moves []metrics.MoveMetric
	transfers := 0
	for step := 0; step < meta.MAX_MOVES_PER_TURN; step++ {
		cmd := p.Turn(e.Board)
		if cmd.IsEndTurn() {
			return moves
		}
		if err := game.Validate(e.Board, player, cmd); err != nil {
			log.Warn().Err(err).Str("agent", p.Name()).Msg("rejected command, ending turn")
			return moves
		}
		if cmd.Type == game.TransferAction {
			if transfers >= e.Rules.MaxTransfersPerTurn() {
				log.Warn().Str("agent", p.Name()).Msgf("transfer limit of %d reached, ending turn", transfers)
				return moves
			}
			transfers++
		}

		e.apply(cmd)

		move := metrics.MoveMetric{Turn: turn, Step: step, Player: player, Action: cmd.String()}
		if reporter, ok := p.(metricsReporter); ok && step == 0 {
			move.SearchMetric = reporter.LastMetrics()
		}
		moves = append(moves, move)

		if e.Board.Winner() != 0 {
			return moves
		}
	}
	log.Warn().Str("agent", p.Name()).Msgf("turn cut after %d commands", meta.MAX_MOVES_PER_TURN)
	return moves
}

func (e *Local) apply(cmd game.Command) {
	src, dst := e.Board.Dice(cmd.Source), e.Board.Dice(cmd.Target)
	switch cmd.Type {
	case game.BattleAction:
		won := game.RollBattle(src, dst, e.random)
		srcAfter, dstAfter := e.Rules.BattleOutcome(src, dst, won)
		if won {
			e.Board.SetOwner(cmd.Target, e.Board.Owner(cmd.Source))
		}
		e.Board.SetDice(cmd.Source, srcAfter)
		e.Board.SetDice(cmd.Target, dstAfter)
	case game.TransferAction:
		srcAfter, dstAfter := e.Rules.TransferOutcome(src, dst)
		e.Board.SetDice(cmd.Source, srcAfter)
		e.Board.SetDice(cmd.Target, dstAfter)
	default:
		panic("Unexpected action type")
	}
}

// reinforce hands out one die per area of the player's largest region, plus the reserve, to
// random areas that are not yet full. What does not fit goes back to the reserve.
func (e *Local) reinforce(player int) {
	dice := game.LargestRegion(e.Board, player) + e.reserve[player]
	open := slices.DeleteFunc(e.Board.PlayerAreas(player), func(id int) bool {
		return e.Board.Dice(id) >= e.Rules.MaxDicePerArea()
	})
	for ; dice > 0 && len(open) > 0; dice-- {
		i := e.random.Intn(len(open))
		id := open[i]
		e.Board.SetDice(id, e.Board.Dice(id)+1)
		if e.Board.Dice(id) >= e.Rules.MaxDicePerArea() {
			open = slices.Delete(open, i, i+1)
		}
	}
	e.reserve[player] = utils.Clamp(dice, 0, meta.MAX_RESERVE)
}

// Reserve returns the dice the player has banked.
func (e *Local) Reserve(player int) int {
	return e.reserve[player]
}
