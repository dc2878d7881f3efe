// Package runtime names the concurrency primitives the batching pipeline is
// built on, so that production code and tests can swap a real clock for a
// virtual one without touching the worker logic.
package runtime

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is benbjohnson/clock.Clock; the batching sink uses its current time
// and its sleepable timer. Production code uses clock.New();
// tests use clock.NewMock() to advance virtual time deterministically.
type Clock = clock.Clock

// New returns the real wall-clock implementation.
func New() Clock {
	return clock.New()
}

// NewMock returns a fake clock pinned at the Unix epoch, for deterministic
// tests of deadline-bound behavior.
func NewMock() *clock.Mock {
	return clock.NewMock()
}

// Sleep pauses the calling goroutine using the given clock, honoring d<=0
// as a no-op rather than blocking forever.
func Sleep(c Clock, d time.Duration) {
	if d <= 0 {
		return
	}
	<-c.After(d)
}
