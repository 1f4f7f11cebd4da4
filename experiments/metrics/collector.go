package metrics

import (
	"time"
)

type SearchMetric struct {
	Algorithm      string
	Depth          int
	Posture        string
	Duration       time.Duration
	SimulatedTurns int
	Evaluations    int
	Pruned         int // Postures skipped by the bound
}

type MoveMetric struct {
	Turn   int
	Step   int // Command index within the turn
	Player int // Player ID
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int // Player ID
	Winner         int // Player ID, 0 when the turn limit was reached
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalTurns     int
	TotalMoves     int
}

// Collector accumulates the counters of one posture search. The searchers are single threaded,
// so plain integers suffice.
type Collector interface {
	Start(algorithm string, depth int)
	AddSimulatedTurn()
	AddEvaluation()
	AddPruned(postures int)
	Complete(posture string) SearchMetric
}

type collector struct {
	algorithm      string
	depth          int
	startTime      time.Time
	simulatedTurns int
	evaluations    int
	pruned         int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm string, depth int) {
	*m = collector{
		algorithm: algorithm,
		depth:     depth,
		startTime: time.Now(),
	}
}

func (m *collector) AddSimulatedTurn() {
	m.simulatedTurns++
}

func (m *collector) AddEvaluation() {
	m.evaluations++
}

func (m *collector) AddPruned(postures int) {
	m.pruned += postures
}

func (m *collector) Complete(posture string) SearchMetric {
	return SearchMetric{
		Algorithm:      m.algorithm,
		Depth:          m.depth,
		Posture:        posture,
		Duration:       time.Since(m.startTime),
		SimulatedTurns: m.simulatedTurns,
		Evaluations:    m.evaluations,
		Pruned:         m.pruned,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm string, depth int)    {}
func (m *dummyCollector) AddSimulatedTurn()                    {}
func (m *dummyCollector) AddEvaluation()                       {}
func (m *dummyCollector) AddPruned(postures int)               {}
func (m *dummyCollector) Complete(posture string) SearchMetric { return SearchMetric{Posture: posture} }
