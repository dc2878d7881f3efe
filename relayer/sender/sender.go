// Package sender implements the message-sender contract (L4): "send a list
// of messages targeted at one side of a relay, get back one event list per
// message". It provides the direct (non-batching) implementation; the
// batching implementation lives in relayer/batch, and
// relayer/orchestrate.Relayer, which wraps one batch.Sink per target, has a
// Send method with the same signature as the Sender function type.
package sender

import (
	"context"

	"github.com/icellan/ibc-relayer-core/relayer/relay"
)

// Sender is the abstract IbcMessageSender operation: submit msgs against
// target's chain and return one event list per message, in order.
type Sender[M any, E any] func(ctx context.Context, target relay.Target, msgs []M) ([][]E, error)

// Direct builds a Sender that forwards straight to the target chain's
// Submit operation, with no batching, coalescing or backpressure.
func Direct[M any, E any](r *relay.Relay[M, E]) Sender[M, E] {
	return func(ctx context.Context, target relay.Target, msgs []M) ([][]E, error) {
		ops := r.ChainFor(target)
		events, err := ops.Submit(ctx, msgs)
		if err != nil {
			return nil, relay.ErrSubmission(err)
		}
		return events, nil
	}
}
