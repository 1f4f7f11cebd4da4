package combat

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Random is the uniform source behind risky decisions and simulated battles.
type Random interface {
	Float64() float64
}

// NewRandom returns a seeded source for reproducible play.
func NewRandom(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Band takes an attack with SuccessRate chance when its win probability is at least MinProbability.
type Band struct {
	MinProbability float64
	SuccessRate    float64
}

// RiskPolicy holds the tunable thresholds of Decide. Attacks at or above Certain always go ahead,
// the first matching band (sorted by descending MinProbability) decides at random, anything
// below the last band never goes ahead.
type RiskPolicy struct {
	Certain float64
	Bands   []Band
}

func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		Certain: 0.8,
		Bands: []Band{
			{MinProbability: 0.6, SuccessRate: 0.95},
			{MinProbability: 0.45, SuccessRate: 0.5},
		},
	}
}

func (p RiskPolicy) Validate() error {
	if p.Certain <= 0 || p.Certain > 1 {
		return fmt.Errorf("certain threshold %v out of range (0, 1]", p.Certain)
	}
	previous := p.Certain
	for i, band := range p.Bands {
		if band.MinProbability < 0 || band.MinProbability >= previous {
			return fmt.Errorf("band %d: min probability %v must be in [0, %v)", i, band.MinProbability, previous)
		}
		if band.SuccessRate < 0 || band.SuccessRate > 1 {
			return fmt.Errorf("band %d: success rate %v out of range [0, 1]", i, band.SuccessRate)
		}
		previous = band.MinProbability
	}
	return nil
}

// Model is the single source of truth for whether a fight is worth it.
type Model struct {
	Policy RiskPolicy
	Random Random
}

func NewModel(policy RiskPolicy, rnd Random) *Model {
	if err := policy.Validate(); err != nil {
		panic(fmt.Sprintf("invalid risk policy: %v", err))
	}
	if rnd == nil {
		panic("model needs a random source")
	}
	return &Model{Policy: policy, Random: rnd}
}

// Decide reports whether an attacker with attackerDice should fight defenderDice.
// Attacker dice above the maximum are clamped.
func (m *Model) Decide(attackerDice, defenderDice int) bool {
	return Decide(attackerDice, defenderDice, m.Policy, m.Random)
}

func Decide(attackerDice, defenderDice int, policy RiskPolicy, rnd Random) bool {
	attackerDice = min(attackerDice, MaxDice)
	p := WinProbability(attackerDice, defenderDice)

	if p >= policy.Certain || attackerDice == MaxDice {
		return true
	}
	for _, band := range policy.Bands {
		if p >= band.MinProbability {
			return rnd.Float64() < band.SuccessRate
		}
	}
	return false
}
