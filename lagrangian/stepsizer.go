package lagrangian

const (
	stepWindow    = 20
	stepMin       = 1e-6
	stepMax       = 10
	stepGrowth    = 1.5
	stepShrink    = 0.5
	defaultStep   = 2.0
)

// StepSizer adapts the subgradient step size based on whether the best
// lower bound improved over the last stepWindow updates: growth when it
// did, contraction when it stalled. Exposed as a standalone type (rather
// than hidden inside Engine) so the CFT engine's BoundCBs can reuse the
// exact same policy.
type StepSizer struct {
	step    float64
	history []float64
}

// NewStepSizer returns a StepSizer starting at the default step size.
func NewStepSizer() *StepSizer { return &StepSizer{step: defaultStep} }

// NewStepSizerFrom returns a StepSizer starting at an explicit step size,
// for callers (the CFT bound phase) that document a different starting
// point than the engine's own default.
func NewStepSizerFrom(start float64) *StepSizer { return &StepSizer{step: start} }

// Step returns the current step size.
func (s *StepSizer) Step() float64 { return s.step }

// Update records the latest best-lower-bound value and, every stepWindow
// calls, grows or shrinks the step depending on whether that window saw
// improvement.
func (s *StepSizer) Update(bestLowerBound float64) {
	s.history = append(s.history, bestLowerBound)
	if len(s.history) < stepWindow || len(s.history)%stepWindow != 0 {
		return
	}
	first := s.history[len(s.history)-stepWindow]
	if bestLowerBound > first {
		s.step = clamp(s.step*stepGrowth, stepMin, stepMax)
	} else {
		s.step = clamp(s.step*stepShrink, stepMin, stepMax)
	}
	if len(s.history) > stepWindow*2 {
		s.history = append([]float64(nil), s.history[len(s.history)-stepWindow:]...)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
