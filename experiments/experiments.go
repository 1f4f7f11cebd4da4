package experiments

import (
	"fmt"

	"dicewars/agent"
	"dicewars/combat"
	"dicewars/engine"
	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/planner"
	"dicewars/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	NumGames      = 20 // Per match up
	DicePerPlayer = 40
)

type Options struct {
	Games        int
	Seed         uint64
	Rows, Cols   int
	MaxTurns     int
	OutputDir    string // CSV files go below this directory
	DatabasePath string // Results are also stored in SQLite when set
	// Planner.MaxTransfers is also the game's transfer cap
	Planner      planner.Config
	Risk         combat.RiskPolicy
	Evaluation   string
}

func DefaultOptions() Options {
	return Options{
		Games:      NumGames,
		Seed:       1,
		Rows:       6,
		Cols:       6,
		MaxTurns:   200,
		OutputDir:  ".",
		Planner:    planner.DefaultConfig(),
		Risk:       combat.DefaultRiskPolicy(),
		Evaluation: game.AreasEvaluation,
	}
}

// validate rejects options the agent configs cannot be played with.
func (o Options) validate(configs []metrics.AgentConfig) error {
	if err := o.Planner.Validate(); err != nil {
		return fmt.Errorf("invalid planner config: %w", err)
	}
	if err := o.Risk.Validate(); err != nil {
		return fmt.Errorf("invalid risk policy: %w", err)
	}
	if _, err := game.EvaluationByName(o.Evaluation); err != nil {
		return err
	}
	for _, config := range configs {
		if config.Algorithm == searcher.AlphaBeta && !game.IsConstantSum(o.Evaluation) {
			return fmt.Errorf("agent %d: alpha-beta pruning needs a constant-sum evaluation, %q is not", config.ID, o.Evaluation)
		}
	}
	return nil
}

// Results holds everything an experiment produced.
type Results struct {
	Dir   string // Directory of the CSV files
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// RunDepthExperiment pairs alpha-beta agents of increasing depth against a depth one baseline.
func RunDepthExperiment(opts Options) (Results, error) {
	baseline := metrics.AgentConfig{ID: 0, Algorithm: searcher.AlphaBeta, Depth: 1}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Algorithm: searcher.AlphaBeta, Depth: 2},
		{ID: 2, Algorithm: searcher.AlphaBeta, Depth: 3},
		{ID: 3, Algorithm: searcher.AlphaBeta, Depth: 4},
	}

	matchUps := [][]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment("depth", append(depthConfigs, baseline), matchUps, opts)
}

// RunAlgorithmExperiment plays max-n and alpha-beta of equal depth against each other and
// against an agent that never searches.
func RunAlgorithmExperiment(opts Options) (Results, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Algorithm: "none"},
		{ID: 2, Algorithm: searcher.MaxN, Depth: 3},
		{ID: 3, Algorithm: searcher.AlphaBeta, Depth: 3},
	}
	matchUps := [][]metrics.AgentConfig{
		{configs[0], configs[1]},
		{configs[0], configs[2]},
		{configs[1], configs[2]},
		{configs[2], configs[1]}, // Alternate the starting agent
	}
	return runExperiment("algorithm", configs, matchUps, opts)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, opts Options) (Results, error) {
	if err := opts.validate(configs); err != nil {
		return Results{}, err
	}
	rnd := rand.New(rand.NewSource(opts.Seed))
	results := Results{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < opts.Games; i++ {
			winner, gameMetric, moveMetrics := runGame(config1, config2, opts, rnd)

			id := uuid.NewString()
			results.Games = append(results.Games, metrics.GameRecord{
				ID:         id,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				results.Moves = append(results.Moves, metrics.MoveRecord{
					Game:       id,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	dir, err := writeCSV(name, configs, results, opts.OutputDir)
	if err != nil {
		return results, err
	}
	results.Dir = dir

	if opts.DatabasePath != "" {
		if err := store(name, configs, results, opts.DatabasePath); err != nil {
			return results, err
		}
	}
	return results, nil
}

func writeCSV(name string, configs []metrics.AgentConfig, results Results, root string) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(results.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

func store(name string, configs []metrics.AgentConfig, results Results, path string) error {
	s, err := metrics.OpenStore(path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveAgentConfigs(name, configs); err != nil {
		return err
	}

	moves := make(map[string][]metrics.MoveRecord)
	for _, m := range results.Moves {
		moves[m.Game] = append(moves[m.Game], m)
	}
	for _, g := range results.Games {
		if err := s.SaveGame(name, g, moves[g.ID]); err != nil {
			return err
		}
	}
	log.Info().Msgf("stored %d games in %s", len(results.Games), path)
	return nil
}

// runGame plays a single game on a fresh random board; config1 plays first
func runGame(config1, config2 metrics.AgentConfig, opts Options, rnd *rand.Rand) (int, metrics.GameMetric, []metrics.MoveMetric) {
	players := []int{1, 2}
	board := game.NewRandomBoard(game.NewGridMap(opts.Rows, opts.Cols), players, DicePerPlayer, rnd)
	rules := game.NewRules(opts.Planner.MaxTransfers)

	agents := []agent.Player{
		createAgent(config1, players[0], opts, rules, rnd),
		createAgent(config2, players[1], opts, rules, rnd),
	}
	e := engine.LocalEngine(agents, board, rules, rnd)
	if opts.MaxTurns > 0 {
		e.MaxTurns = opts.MaxTurns
	}
	return e.Run()
}

// plannerConfig applies the agent's own transfer limit, which may only be stricter than the rules
func plannerConfig(config metrics.AgentConfig, opts Options, rules game.Rules) planner.Config {
	cfg := opts.Planner
	cfg.MaxTransfers = min(cfg.MaxTransfers, rules.MaxTransfersPerTurn())
	if config.MaxTransfers > 0 {
		cfg.MaxTransfers = min(config.MaxTransfers, rules.MaxTransfersPerTurn())
	}
	return cfg
}

func createAgent(config metrics.AgentConfig, player int, opts Options, rules game.Rules, rnd *rand.Rand) *agent.Agent {
	p := planner.New(plannerConfig(config, opts, rules), combat.NewModel(opts.Risk, rnd))

	if config.Algorithm == "" || config.Algorithm == "none" {
		return agent.NewAgent(player, p, nil)
	}

	evaluate, err := game.EvaluationByName(opts.Evaluation)
	if err != nil {
		panic(err)
	}
	options := []searcher.Option{searcher.WithMetrics(), searcher.WithEvaluationFn(evaluate)}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	sim := searcher.NewSimulator(p, rules, rnd)
	return agent.NewAgent(player, p, searcher.New(config.Algorithm, sim, options...))
}
