package batch

import (
	"context"
	"errors"

	"github.com/icellan/ibc-relayer-core/internal/metrics"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
)

// flatten projects messages_1 ... messages_k out of ready, preserving
// order, and returns the per-batch message counts alongside.
func flatten[M any, E any](ready []*MessageBatch[M, E]) (flat []M, counts []int) {
	counts = make([]int, len(ready))
	total := 0
	for i, b := range ready {
		counts[i] = len(b.Messages)
		total += counts[i]
	}
	flat = make([]M, 0, total)
	for _, b := range ready {
		flat = append(flat, b.Messages...)
	}
	return flat, counts
}

// cursor hands out successive n-sized slices of a flat sequence, returning
// a shorter (possibly empty) slice once the sequence is exhausted rather
// than panicking — a defensive response to a chain implementation that
// violates the submit length contract.
type cursor[E any] struct {
	remaining [][]E
}

func (c *cursor[E]) take(n int) [][]E {
	if n > len(c.remaining) {
		n = len(c.remaining)
	}
	out := c.remaining[:n]
	c.remaining = c.remaining[n:]
	return out
}

// submitReady flattens ready into a single transaction, calls send, and
// demultiplexes the result (or fans out the error) back onto each batch's
// reply channel. send is the only suspension point inside this function.
func submitReady[M any, E any](ctx context.Context, ready []*MessageBatch[M, E], send func(ctx context.Context, msgs []M) ([][]E, error), m *metrics.Metrics) {
	flat, counts := flatten(ready)

	events, err := send(ctx, flat)
	if err != nil {
		if m != nil {
			m.SubmissionErrors.WithLabelValues(errorKind(err)).Inc()
		}
		for _, b := range ready {
			b.deliver(Result[E]{Err: err})
		}
		return
	}

	c := &cursor[E]{remaining: events}
	for i, b := range ready {
		slice := c.take(counts[i])
		// take returns a view; copy it so later mutation of the
		// underlying events slice can't be observed by a caller.
		cp := make([][]E, len(slice))
		copy(cp, slice)
		b.deliver(Result[E]{Events: cp})
	}
}

// errorKind labels a submission failure by relay.Kind for the
// submission_errors_total metric, falling back to "unknown" for an error
// that didn't originate as a relay.Error (e.g. a raw chain.ChainOps error
// the send closure never wrapped).
func errorKind(err error) string {
	var re relay.Error
	if errors.As(err, &re) {
		return re.Kind.String()
	}
	return "unknown"
}
