package physics

import "time"

// Stepper is a fixed-timestep accumulator. Frame deltas are summed as
// durations so the number of steps taken depends only on the total elapsed
// time, never on how it was chunked.
type Stepper struct {
	step time.Duration
	// maxSteps caps the steps taken by a single Advance; 0 means unlimited.
	maxSteps int
	acc      time.Duration
}

// NewStepper returns a stepper running tickRate steps per second.
func NewStepper(tickRate int, maxSteps int) *Stepper {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Stepper{
		step:     time.Second / time.Duration(tickRate),
		maxSteps: maxSteps,
	}
}

// Step returns the fixed step length.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Accumulated returns the time not yet consumed by a step.
func (s *Stepper) Accumulated() time.Duration {
	return s.acc
}

// Advance adds dt to the accumulator and calls fn once per whole step with
// the step length in seconds. It returns the number of steps taken.
func (s *Stepper) Advance(dt time.Duration, fn func(dt float64)) int {
	if dt > 0 {
		s.acc += dt
	}

	seconds := s.step.Seconds()
	steps := 0
	for s.acc >= s.step {
		if s.maxSteps > 0 && steps >= s.maxSteps {
			s.acc %= s.step
			break
		}
		fn(seconds)
		s.acc -= s.step
		steps++
	}
	return steps
}

// Reset drops any accumulated time.
func (s *Stepper) Reset() {
	s.acc = 0
}
