// Package orchestrate assembles the message-sender contract (L4) over the
// batching sink (L5) for each direction of a relay (L6): one sink per
// target chain, both driven from the same relay context.
package orchestrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icellan/ibc-relayer-core/internal/logging"
	"github.com/icellan/ibc-relayer-core/internal/metrics"
	"github.com/icellan/ibc-relayer-core/relayer/batch"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
	"github.com/icellan/ibc-relayer-core/relayer/sender"
)

// Relayer holds one batching sink per direction of a relay, exposing the
// same Sender signature a direct, non-batching caller would use.
type Relayer[M any, E any] struct {
	relay *relay.Relay[M, E]
	sinks map[relay.Target]*batch.Sink[M, E]

	logger *slog.Logger
}

// New builds a Relayer with one batching sink per direction. opts apply to
// both sinks uniformly; there is no per-direction tuning. Returns a relay.Error of KindConfig if opts leave either
// sink's Config in an unworkable state; any sinks already built are closed
// before returning.
func New[M any, E any](r *relay.Relay[M, E], logger *slog.Logger, m *metrics.Metrics, opts ...batch.Option) (*Relayer[M, E], error) {
	log := logging.Child(logger, "orchestrate")

	rl := &Relayer[M, E]{
		relay:  r,
		sinks:  make(map[relay.Target]*batch.Sink[M, E]),
		logger: log,
	}

	for _, target := range []relay.Target{relay.TargetSrc, relay.TargetDst} {
		target := target
		ops := r.ChainFor(target)
		direct := sender.Direct(r)

		send := func(ctx context.Context, msgs []M) ([][]E, error) {
			return direct(ctx, target, msgs)
		}
		estimate := batch.WrapEstimateLen(log, func(msg M) (int, error) {
			return ops.EstimateLen(context.Background(), msg)
		})

		allOpts := append([]batch.Option{
			batch.WithLogger(log.With(slog.String("target", target.String()))),
			batch.WithMetrics(m),
		}, opts...)

		sink, err := batch.New[M, E](estimate, send, allOpts...)
		if err != nil {
			rl.Close()
			return nil, fmt.Errorf("orchestrate: build %s sink: %w", target, err)
		}
		rl.sinks[target] = sink
	}

	return rl, nil
}

// Send implements sender.Sender by routing through the sink for target.
func (r *Relayer[M, E]) Send(ctx context.Context, target relay.Target, msgs []M) ([][]E, error) {
	return r.sinks[target].Send(ctx, msgs)
}

// Close shuts down both directions' sinks.
func (r *Relayer[M, E]) Close() {
	for _, s := range r.sinks {
		s.Close()
	}
}
