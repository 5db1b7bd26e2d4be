// Package testutil holds deterministic stand-ins and fixtures shared by
// package tests and the scenario harness.
package testutil

import "sync"

// StepClock is a resettable logical clock. It satisfies session.Sequencer.
//
// The harness resets it between the live run and the replay run so both
// journals start from seq 1.
type StepClock struct {
	mu  sync.Mutex
	seq int64
}

// NewStepClock creates a clock whose first Next returns 1.
func NewStepClock() *StepClock {
	return &StepClock{}
}

// Next increments and returns the sequence number.
func (c *StepClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last value handed out.
func (c *StepClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Skip advances the clock by n without handing the values out.
func (c *StepClock) Skip(n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq += n
}

// Reset rewinds to 0.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
