package rlebw

import (
	"fmt"
	"sync/atomic"
)

// Counters tallies row element accesses made by the image operations.
// A nil *Counters is valid and counts nothing, so callers that don't care
// about instrumentation can simply pass nil.
type Counters struct {
	reads  atomic.Int64
	writes atomic.Int64
	steps  atomic.Int64
}

// NewCounters returns a zeroed counter set.
func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) read(n int) {
	if c != nil {
		c.reads.Add(int64(n))
	}
}

func (c *Counters) write(n int) {
	if c != nil {
		c.writes.Add(int64(n))
	}
}

func (c *Counters) step() {
	if c != nil {
		c.steps.Add(1)
	}
}

// RowReads returns the number of row elements read.
func (c *Counters) RowReads() int64 {
	if c == nil {
		return 0
	}
	return c.reads.Load()
}

// RowWrites returns the number of row elements written.
func (c *Counters) RowWrites() int64 {
	if c == nil {
		return 0
	}
	return c.writes.Load()
}

// MergeSteps returns the number of lockstep iterations of the run merge.
func (c *Counters) MergeSteps() int64 {
	if c == nil {
		return 0
	}
	return c.steps.Load()
}

// Reset sets all counters back to zero.
func (c *Counters) Reset() {
	if c == nil {
		return
	}
	c.reads.Store(0)
	c.writes.Store(0)
	c.steps.Store(0)
}

func (c *Counters) String() string {
	return fmt.Sprintf("reads=%d writes=%d merge_steps=%d",
		c.RowReads(), c.RowWrites(), c.MergeSteps())
}
