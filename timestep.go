package bp

import "time"

// Stepper turns variable frame times into a whole number of fixed steps.
//
// Time is accumulated in nanoseconds so that every step receives exactly the
// same dt. When a frame would need more than maxSteps steps the backlog is
// discarded and only the fraction of a tick left over is carried.
type Stepper struct {
	tick     time.Duration
	maxSteps int

	accumulator time.Duration
	dropped     int
}

func NewStepper(tick time.Duration, maxSteps int) *Stepper {
	assert(tick > 0, "Stepper tick must be positive")
	assert(maxSteps > 0, "Stepper maxSteps must be positive")
	return &Stepper{tick: tick, maxSteps: maxSteps}
}

// Advance adds elapsed to the accumulator and calls step once per whole tick.
// It returns the number of steps taken.
func (s *Stepper) Advance(elapsed time.Duration, step func(dt float64)) int {
	if elapsed > 0 {
		s.accumulator += elapsed
	}

	dt := s.Dt()
	steps := 0
	for s.accumulator >= s.tick && steps < s.maxSteps {
		step(dt)
		s.accumulator -= s.tick
		steps++
	}

	if s.accumulator >= s.tick {
		s.dropped += int(s.accumulator / s.tick)
		s.accumulator %= s.tick
	}
	return steps
}

// Dt is the length of one step in seconds.
func (s *Stepper) Dt() float64 {
	return s.tick.Seconds()
}

func (s *Stepper) Tick() time.Duration {
	return s.tick
}

// Alpha is how far the accumulator is into the next tick, in [0, 1).
// Renderers use it to interpolate between the last two states.
func (s *Stepper) Alpha() float64 {
	return float64(s.accumulator) / float64(s.tick)
}

// Dropped is the number of ticks discarded so far because of the step cap.
func (s *Stepper) Dropped() int {
	return s.dropped
}

func (s *Stepper) Reset() {
	s.accumulator = 0
	s.dropped = 0
}
