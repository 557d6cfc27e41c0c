package testutil

import (
	"fmt"
	"sync"
	"time"
)

// SequentialRunIDs hands out UUID-shaped run ids in a fixed order.
//
// The first call to NewRunID returns 00000000-0000-0000-0000-000000000001.
// Safe for concurrent use.
type SequentialRunIDs struct {
	mu  sync.Mutex
	seq int64
}

// NewRunID returns the next id.
func (g *SequentialRunIDs) NewRunID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return RunID(g.seq)
}

// Reset restarts the sequence.
func (g *SequentialRunIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}

// RunID returns the n-th id SequentialRunIDs produces.
func RunID(n int64) string {
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
}

// FixedTime is the instant FixedClock reports.
var FixedTime = time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

// FixedClock always returns FixedTime.
func FixedClock() time.Time {
	return FixedTime
}
