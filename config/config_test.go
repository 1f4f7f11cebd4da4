package config

import (
	"testing"

	"dicewars/combat"
	"dicewars/game"
	"dicewars/meta"
	"dicewars/searcher"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, meta.MAX_TRANSFERS, cfg.MaxTransfers)
	require.Equal(t, meta.ATTACK_TRANSFERS, cfg.AttackTransfers)
	require.Equal(t, meta.SEARCH_DEPTH, cfg.SearchDepth)
	require.Equal(t, searcher.AlphaBeta, cfg.Algorithm)
	require.Equal(t, uint64(1), cfg.Seed)
	require.Equal(t, game.AreasEvaluation, cfg.Evaluation)
	require.Equal(t, combat.DefaultRiskPolicy(), cfg.Risk)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DICEWARS_MAX_TRANSFERS", "3")
	t.Setenv("DICEWARS_ATTACK_TRANSFERS", "2")
	t.Setenv("DICEWARS_ALGORITHM", searcher.MaxN)
	t.Setenv("DICEWARS_SEED", "42")
	t.Setenv("DICEWARS_PRETTY", "true")
	t.Setenv("DICEWARS_RISK_CERTAIN", "0.9")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxTransfers)
	require.Equal(t, searcher.MaxN, cfg.Algorithm)
	require.Equal(t, uint64(42), cfg.Seed)
	require.True(t, cfg.Pretty)
	require.Equal(t, 0.9, cfg.Risk.Certain)

	p := cfg.Planner()
	require.Equal(t, 3, p.MaxTransfers)
	require.Equal(t, 2, p.AttackTransfers)
	require.Equal(t, meta.MAX_MOVES_PER_TURN, p.MaxMoves)
}

func TestTransferCapIsShared(t *testing.T) {
	t.Setenv("DICEWARS_MAX_TRANSFERS", "8")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Planner().MaxTransfers)
	require.Equal(t, 8, cfg.Rules().MaxTransfersPerTurn())
}

func TestRiskBands(t *testing.T) {
	t.Run("bands from the environment", func(t *testing.T) {
		t.Setenv("DICEWARS_RISK_BANDS", "0.7:0.9, 0.5:0.25")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, []combat.Band{
			{MinProbability: 0.7, SuccessRate: 0.9},
			{MinProbability: 0.5, SuccessRate: 0.25},
		}, cfg.Risk.Bands)
		require.NoError(t, cfg.Validate())
	})

	t.Run("none removes every band", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.NoError(t, cfg.SetBands("none"))
		require.Empty(t, cfg.Risk.Bands)
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed bands", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.Error(t, cfg.SetBands("0.6"))
		require.Error(t, cfg.SetBands("0.6:often"))
	})

	t.Run("unordered bands fail validation", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.NoError(t, cfg.SetBands("0.45:0.5,0.6:0.95"))
		require.Error(t, cfg.Validate())
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Setenv("DICEWARS_RISK_BANDS", "high:low")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("DICEWARS_SEARCH_DEPTH", "deep")
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Algorithm = "mcts"
	require.Error(t, cfg.Validate())

	cfg.Algorithm = "none"
	cfg.SearchDepth = 0
	require.Error(t, cfg.Validate())

	cfg.SearchDepth = 2
	cfg.MaxTransfers = -1
	require.Error(t, cfg.Validate())
}

func TestValidateEvaluation(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Evaluation = "material"
	require.Error(t, cfg.Validate())

	cfg.Evaluation = game.RegionsEvaluation
	cfg.Algorithm = searcher.AlphaBeta
	require.Error(t, cfg.Validate(), "Region scores do not sum to the number of areas")

	cfg.Algorithm = searcher.MaxN
	require.NoError(t, cfg.Validate())
}
