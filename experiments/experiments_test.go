package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"dicewars/experiments/metrics"
	"dicewars/game"
	"dicewars/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func smallOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.Games = 1
	opts.Rows, opts.Cols = 4, 4
	opts.MaxTurns = 8
	opts.OutputDir = t.TempDir()
	opts.DatabasePath = filepath.Join(opts.OutputDir, "results.db")
	return opts
}

func TestRunExperiment(t *testing.T) {
	opts := smallOptions(t)
	configs := []metrics.AgentConfig{
		{ID: 1, Algorithm: "none"},
		{ID: 2, Algorithm: searcher.AlphaBeta, Depth: 1},
	}
	matchUps := [][]metrics.AgentConfig{{configs[0], configs[1]}, {configs[1], configs[0]}}

	results, err := runExperiment("smoke", configs, matchUps, opts)
	require.NoError(t, err)
	require.Len(t, results.Games, 2)
	require.Equal(t, 1, results.Games[0].Agent1)
	require.Equal(t, 2, results.Games[1].Agent1)

	for _, file := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
		_, err := os.Stat(filepath.Join(results.Dir, file))
		require.NoError(t, err, file)
	}

	s, err := metrics.OpenStore(opts.DatabasePath)
	require.NoError(t, err)
	defer s.Close()
	games, err := s.Games("smoke")
	require.NoError(t, err)
	require.Len(t, games, 2)
}

func TestCreateAgent(t *testing.T) {
	opts := smallOptions(t)
	rnd := rand.New(rand.NewSource(1))
	a := createAgent(metrics.AgentConfig{ID: 1, Algorithm: searcher.MaxN, Depth: 2, MaxTransfers: 2}, 2, opts, game.NewStandardRules(), rnd)
	require.Equal(t, 2, a.Player())
	require.Equal(t, "Player2", a.Name())
}

func TestPlannerConfig(t *testing.T) {
	opts := DefaultOptions()
	opts.Planner.MaxTransfers = 8
	rules := game.NewRules(opts.Planner.MaxTransfers)

	require.Equal(t, 8, plannerConfig(metrics.AgentConfig{ID: 1}, opts, rules).MaxTransfers,
		"Planner and engine share the cap")
	require.Equal(t, 3, plannerConfig(metrics.AgentConfig{ID: 1, MaxTransfers: 3}, opts, rules).MaxTransfers)
	require.Equal(t, 8, plannerConfig(metrics.AgentConfig{ID: 1, MaxTransfers: 10}, opts, rules).MaxTransfers,
		"Agents cannot plan beyond the rules")
	require.Equal(t, 6, plannerConfig(metrics.AgentConfig{ID: 1}, opts, game.NewStandardRules()).MaxTransfers)
}

func TestOptionsValidate(t *testing.T) {
	opts := smallOptions(t)
	configs := []metrics.AgentConfig{{ID: 1, Algorithm: searcher.MaxN, Depth: 1}}
	require.NoError(t, opts.validate(configs))

	opts.Evaluation = game.RegionsEvaluation
	require.NoError(t, opts.validate(configs))
	require.Error(t, opts.validate(append(configs, metrics.AgentConfig{ID: 2, Algorithm: searcher.AlphaBeta})))

	opts.Evaluation = "material"
	require.Error(t, opts.validate(configs))

	_, err := runExperiment("bad", configs, nil, opts)
	require.Error(t, err)
}

func TestRunExperimentWithEvaluation(t *testing.T) {
	opts := smallOptions(t)
	opts.Evaluation = game.BorderEvaluation
	configs := []metrics.AgentConfig{
		{ID: 1, Algorithm: "none"},
		{ID: 2, Algorithm: searcher.MaxN, Depth: 1},
	}

	results, err := runExperiment("evaluation", configs, [][]metrics.AgentConfig{{configs[0], configs[1]}}, opts)
	require.NoError(t, err)
	require.Len(t, results.Games, 1)
}
