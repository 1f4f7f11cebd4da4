package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"dicewars/combat"
	"dicewars/game"
	"dicewars/meta"
	"dicewars/planner"
	"dicewars/searcher"
)

// Config holds the agent and experiment settings loaded from environment variables.
type Config struct {
	MaxTransfers    int
	AttackTransfers int
	ThreatMargin    int
	SearchDepth     int
	Algorithm       string // maxn, alphabeta or none
	Evaluation      string // areas, regions or border
	Seed            uint64
	Risk            combat.RiskPolicy
	LogLevel        string
	Pretty          bool
	DatabasePath    string
}

// Load reads configuration from environment variables with defaults from meta.
func Load() (*Config, error) {
	cfg := &Config{
		Algorithm:    envOrDefault("DICEWARS_ALGORITHM", searcher.AlphaBeta),
		Evaluation:   envOrDefault("DICEWARS_EVALUATION", game.AreasEvaluation),
		LogLevel:     envOrDefault("DICEWARS_LOG_LEVEL", "info"),
		DatabasePath: envOrDefault("DICEWARS_DB", ""),
		Risk:         combat.DefaultRiskPolicy(),
	}

	var err error
	if cfg.MaxTransfers, err = intOrDefault("DICEWARS_MAX_TRANSFERS", meta.MAX_TRANSFERS); err != nil {
		return nil, err
	}
	if cfg.AttackTransfers, err = intOrDefault("DICEWARS_ATTACK_TRANSFERS", meta.ATTACK_TRANSFERS); err != nil {
		return nil, err
	}
	if cfg.ThreatMargin, err = intOrDefault("DICEWARS_THREAT_MARGIN", meta.THREAT_MARGIN); err != nil {
		return nil, err
	}
	if cfg.SearchDepth, err = intOrDefault("DICEWARS_SEARCH_DEPTH", meta.SEARCH_DEPTH); err != nil {
		return nil, err
	}

	seed := envOrDefault("DICEWARS_SEED", "1")
	if cfg.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid DICEWARS_SEED %q: %w", seed, err)
	}
	pretty := envOrDefault("DICEWARS_PRETTY", "false")
	if cfg.Pretty, err = strconv.ParseBool(pretty); err != nil {
		return nil, fmt.Errorf("invalid DICEWARS_PRETTY %q: %w", pretty, err)
	}

	if certain := os.Getenv("DICEWARS_RISK_CERTAIN"); certain != "" {
		if cfg.Risk.Certain, err = strconv.ParseFloat(certain, 64); err != nil {
			return nil, fmt.Errorf("invalid DICEWARS_RISK_CERTAIN %q: %w", certain, err)
		}
	}
	if bands := os.Getenv("DICEWARS_RISK_BANDS"); bands != "" {
		if err := cfg.SetBands(bands); err != nil {
			return nil, fmt.Errorf("invalid DICEWARS_RISK_BANDS: %w", err)
		}
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Planner().Validate(); err != nil {
		return err
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("search depth must be at least 1, got %d", c.SearchDepth)
	}
	switch c.Algorithm {
	case searcher.MaxN, searcher.AlphaBeta, "none":
	default:
		return fmt.Errorf("unknown algorithm %q", c.Algorithm)
	}
	if _, err := game.EvaluationByName(c.Evaluation); err != nil {
		return err
	}
	if c.Algorithm == searcher.AlphaBeta && !game.IsConstantSum(c.Evaluation) {
		return fmt.Errorf("alpha-beta pruning needs a constant-sum evaluation, %q is not", c.Evaluation)
	}
	return c.Risk.Validate()
}

// SetBands replaces the risk bands from a list like "0.6:0.95,0.45:0.5", each entry a minimum
// win probability and the chance to attack at or above it. "none" removes every band.
func (c *Config) SetBands(value string) error {
	if value == "none" {
		c.Risk.Bands = nil
		return nil
	}
	var bands []combat.Band
	for _, entry := range strings.Split(value, ",") {
		minimum, rate, ok := strings.Cut(strings.TrimSpace(entry), ":")
		if !ok {
			return fmt.Errorf("band %q is not of the form probability:rate", entry)
		}
		var (
			band combat.Band
			err  error
		)
		if band.MinProbability, err = strconv.ParseFloat(minimum, 64); err != nil {
			return fmt.Errorf("band %q: %w", entry, err)
		}
		if band.SuccessRate, err = strconv.ParseFloat(rate, 64); err != nil {
			return fmt.Errorf("band %q: %w", entry, err)
		}
		bands = append(bands, band)
	}
	c.Risk.Bands = bands
	return nil
}

// Planner returns the planner settings of the configuration.
func (c *Config) Planner() planner.Config {
	cfg := planner.DefaultConfig()
	cfg.MaxTransfers = c.MaxTransfers
	cfg.AttackTransfers = c.AttackTransfers
	cfg.ThreatMargin = c.ThreatMargin
	return cfg
}

// Rules returns the game rules, with the same transfer cap the planner plans for.
func (c *Config) Rules() *game.StandardRules {
	return game.NewRules(c.MaxTransfers)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
