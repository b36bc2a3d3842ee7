package lagrangian

import "math"

const (
	stopWindow   = 100
	stopRelTol   = 0.001
	stopAbsTol   = 1.0
)

// Stopper decides when subgradient iteration has stalled: the best lower
// bound must improve by less than stopRelTol relatively AND less than
// stopAbsTol absolutely over a stopWindow-iteration window before it
// reports stop. Exposed standalone for the same reason as StepSizer.
type Stopper struct {
	history []float64
}

// NewStopper returns a fresh Stopper.
func NewStopper() *Stopper { return &Stopper{} }

// ShouldStop records the latest best-lower-bound value and reports
// whether progress has stalled over the trailing window.
func (s *Stopper) ShouldStop(bestLowerBound float64) bool {
	s.history = append(s.history, bestLowerBound)
	if len(s.history) <= stopWindow {
		return false
	}
	old := s.history[len(s.history)-stopWindow-1]
	absImprovement := bestLowerBound - old
	denom := math.Max(math.Abs(old), 1e-12)
	relImprovement := absImprovement / denom

	if len(s.history) > stopWindow*3 {
		s.history = append([]float64(nil), s.history[len(s.history)-stopWindow-1:]...)
	}
	return relImprovement < stopRelTol && absImprovement < stopAbsTol
}
