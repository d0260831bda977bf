package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) pacer(budget time.Duration) Pacer {
	p := NewPacer(budget)
	p.now = func() time.Time { return c.now }
	p.sleep = func(d time.Duration) {
		c.slept = append(c.slept, d)
		c.now = c.now.Add(d)
	}
	return p
}

func TestPacerSleepsRemainingBudget(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	p := clock.pacer(16 * time.Millisecond)

	start := clock.now
	clock.now = start.Add(5 * time.Millisecond)
	assert.Equal(t, 11*time.Millisecond, p.Pace(start))
	assert.Equal(t, []time.Duration{11 * time.Millisecond}, clock.slept)
}

func TestPacerOverrunDoesNotSleep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	p := clock.pacer(16 * time.Millisecond)

	start := clock.now
	clock.now = start.Add(20 * time.Millisecond)
	assert.Zero(t, p.Remaining(start))
	assert.Zero(t, p.Pace(start))
	assert.Empty(t, clock.slept)
}

func TestPacerExactBudgetDoesNotSleep(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	p := clock.pacer(16 * time.Millisecond)

	start := clock.now
	clock.now = start.Add(16 * time.Millisecond)
	assert.Zero(t, p.Pace(start))
	assert.Empty(t, clock.slept)
}
