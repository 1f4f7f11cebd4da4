package main

import (
	"flag"
	"fmt"
	"os"

	"dicewars/agent"
	"dicewars/combat"
	"dicewars/config"
	"dicewars/engine"
	"dicewars/experiments"
	"dicewars/game"
	"dicewars/logger"
	"dicewars/planner"
	"dicewars/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	mode := flag.String("mode", "game", "What to run: game, depth or algorithm")
	players := flag.Int("players", 2, "Number of players in a single game")
	rows := flag.Int("rows", 6, "Rows of the grid map")
	cols := flag.Int("cols", 6, "Columns of the grid map")
	games := flag.Int("games", experiments.NumGames, "Games per match up in experiments")
	out := flag.String("out", ".", "Directory for experiment CSV files")
	flag.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "Search algorithm: maxn, alphabeta or none")
	flag.StringVar(&cfg.Evaluation, "eval", cfg.Evaluation, "Evaluation at the search horizon: areas, regions or border")
	flag.IntVar(&cfg.SearchDepth, "depth", cfg.SearchDepth, "Simulated turns to look ahead")
	flag.IntVar(&cfg.MaxTransfers, "transfers", cfg.MaxTransfers, "Transfers allowed per turn")
	flag.Float64Var(&cfg.Risk.Certain, "risk-certain", cfg.Risk.Certain, "Win probability above which an attack always goes ahead")
	flag.Func("risk-bands", "Risk bands as probability:rate pairs, e.g. 0.6:0.95,0.45:0.5, or none", cfg.SetBands)
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	flag.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "Log level")
	flag.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Human readable log output")
	flag.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "SQLite file experiment results are also stored in")
	flag.Parse()

	logger.Init(cfg.LogLevel, cfg.Pretty)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	switch *mode {
	case "game":
		runSingleGame(cfg, *players, *rows, *cols)
	case "depth", "algorithm":
		runExperiment(cfg, *mode, *games, *rows, *cols, *out)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

// runSingleGame plays every seat with the configured agent and logs the result
func runSingleGame(cfg *config.Config, numPlayers, rows, cols int) {
	rnd := rand.New(rand.NewSource(cfg.Seed))
	rules := cfg.Rules()
	evaluate, err := game.EvaluationByName(cfg.Evaluation)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	players := make([]int, numPlayers)
	for i := range players {
		players[i] = i + 1
	}
	board := game.NewRandomBoard(game.NewGridMap(rows, cols), players, experiments.DicePerPlayer, rnd)

	agents := make([]agent.Player, 0, numPlayers)
	for _, player := range players {
		p := planner.New(cfg.Planner(), combat.NewModel(cfg.Risk, rnd))
		var s searcher.Searcher
		if cfg.Algorithm != "none" {
			sim := searcher.NewSimulator(p, rules, rnd)
			s = searcher.New(cfg.Algorithm, sim,
				searcher.WithDepth(cfg.SearchDepth), searcher.WithEvaluationFn(evaluate), searcher.WithMetrics())
		}
		agents = append(agents, agent.NewAgent(player, p, s))
	}

	e := engine.LocalEngine(agents, board, rules, rnd)
	winner, gameMetric, _ := e.Run()
	log.Info().
		Int("winner", winner).
		Int("turns", gameMetric.TotalTurns).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("game over")
}

func runExperiment(cfg *config.Config, name string, games, rows, cols int, out string) {
	opts := experiments.DefaultOptions()
	opts.Games = games
	opts.Seed = cfg.Seed
	opts.Rows, opts.Cols = rows, cols
	opts.OutputDir = out
	opts.DatabasePath = cfg.DatabasePath
	opts.Planner = cfg.Planner()
	opts.Risk = cfg.Risk
	opts.Evaluation = cfg.Evaluation

	run := experiments.RunDepthExperiment
	if name == "algorithm" {
		run = experiments.RunAlgorithmExperiment
	}
	results, err := run(opts)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", name)
	}
	log.Info().Str("dir", results.Dir).Int("games", len(results.Games)).Msgf("%s experiment done", name)
}
