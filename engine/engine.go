package engine

import "dicewars/experiments/metrics"

type Engine interface {
	// Run plays until one player owns every area or the turn limit is reached
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
