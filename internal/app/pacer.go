package app

import "time"

// Pacer caps the frame rate softly: a frame that overruns its budget is
// followed immediately by the next one, with no catch-up.
type Pacer struct {
	Budget time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

func NewPacer(budget time.Duration) Pacer {
	return Pacer{Budget: budget, now: time.Now, sleep: time.Sleep}
}

func (p Pacer) Now() time.Time { return p.now() }

// Remaining returns how much of the budget is left since start.
func (p Pacer) Remaining(start time.Time) time.Duration {
	d := p.Budget - p.now().Sub(start)
	if d < 0 {
		return 0
	}
	return d
}

// Pace sleeps for the rest of the frame that began at start and returns
// the time slept.
func (p Pacer) Pace(start time.Time) time.Duration {
	d := p.Remaining(start)
	if d > 0 {
		p.sleep(d)
	}
	return d
}
