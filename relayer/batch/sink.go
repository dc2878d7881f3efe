package batch

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/icellan/ibc-relayer-core/internal/logging"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
)

// SendFunc is the underlying, non-batching submission call a Sink drives:
// given a flattened transaction of messages, return one event list per
// message in order.
type SendFunc[M any, E any] func(ctx context.Context, msgs []M) ([][]E, error)

// EstimateLenFunc returns an upper-bound byte size for a single message.
// Implementations that can fail should be wrapped so failures collapse to
// zero before reaching the Sink — see WrapEstimateLen.
type EstimateLenFunc[M any] func(m M) int

// WrapEstimateLen adapts a fallible estimator into the size-or-zero form
// the partitioner requires, logging the suppressed failure.
func WrapEstimateLen[M any](logger *slog.Logger, estimate func(m M) (int, error)) EstimateLenFunc[M] {
	log := logging.Child(logger, "batch_sink")
	return func(m M) int {
		n, err := estimate(m)
		if err != nil {
			log.Debug("estimate_len failed, treating as zero size", logging.Error(err))
			return 0
		}
		return n
	}
}

// core is the shared, reference-counted state behind every clone of a
// Sink. pending/lastSent are local to the worker goroutine; callers touch
// only input, stopCh and the atomic refs/closing fields, all of which are
// safe for concurrent use.
type core[M any, E any] struct {
	cfg         Config
	estimateLen EstimateLenFunc[M]
	send        SendFunc[M, E]

	input   chan *MessageBatch[M, E]
	stopCh  chan struct{}
	refs    atomic.Int64
	closing atomic.Bool

	logger *slog.Logger
}

// Sink is a cloneable handle onto a single worker goroutine's input
// channel. Every clone addresses the same worker; closing every clone
// terminates it.
type Sink[M any, E any] struct {
	c *core[M, E]
}

// New builds a bounded-channel sink and spawns its single worker goroutine,
// returning the handle. estimateLen must never panic; use WrapEstimateLen
// to adapt a fallible estimator. Returns a relay.Error of KindConfig if opts
// leave the Config in an unworkable state.
func New[M any, E any](estimateLen EstimateLenFunc[M], send SendFunc[M, E], opts ...Option) (*Sink[M, E], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &core[M, E]{
		cfg:         cfg,
		estimateLen: estimateLen,
		send:        send,
		input:       make(chan *MessageBatch[M, E], cfg.BufferSize),
		stopCh:      make(chan struct{}),
		logger:      logging.Child(cfg.logger, "batch_sink"),
	}
	c.refs.Store(1)

	s := &Sink[M, E]{c: c}
	go c.run()
	return s, nil
}

// Clone returns a new handle addressing the same worker, incrementing the
// underlying reference count.
func (s *Sink[M, E]) Clone() *Sink[M, E] {
	s.c.refs.Add(1)
	return &Sink[M, E]{c: s.c}
}

// Close releases this handle. When the last handle is closed the worker
// observes shutdown on its next poll and exits immediately; batches still
// queued are dropped unreplied and their callers observe ChannelClosed.
func (s *Sink[M, E]) Close() {
	if s.c.refs.Add(-1) == 0 {
		s.c.closing.Store(true)
		close(s.c.stopCh)
	}
}

// Send allocates a single-use reply, enqueues a MessageBatch, and blocks
// until the worker has submitted it (or the sink is closed). Enqueue
// blocks when the input channel is full — this is the sink's backpressure
// surface.
func (s *Sink[M, E]) Send(ctx context.Context, msgs []M) ([][]E, error) {
	if s.c.closing.Load() {
		return nil, relay.ErrChannelClosed()
	}

	b := newMessageBatch[M, E](msgs)

	select {
	case s.c.input <- b:
	case <-s.c.stopCh:
		return nil, relay.ErrChannelClosed()
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case res, ok := <-b.reply:
		if !ok {
			return nil, relay.ErrChannelClosed()
		}
		return res.Events, res.Err
	case <-s.c.stopCh:
		return nil, relay.ErrChannelClosed()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// run is the worker's cooperative loop. It owns pending and lastSent
// exclusively; no lock is ever held across a suspension point.
func (c *core[M, E]) run() {
	var pending []*MessageBatch[M, E]
	lastSent := c.cfg.clock.Now()

	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		select {
		case b := <-c.input:
			pending = append(pending, b)
		default:
		}

		if len(pending) == 0 {
			select {
			case <-c.stopCh:
				return
			case <-c.cfg.clock.After(c.cfg.PollInterval):
			}
			continue
		}

		sizes := make([]int, len(pending))
		for i, b := range pending {
			sizes[i] = batchSize[M, E](c.estimateLen, b)
		}

		ready, remaining := partition(pending, sizes, c.cfg.MaxMessageCount, c.cfg.MaxTxSize)

		now := c.cfg.clock.Now()
		submit := false
		switch {
		case len(ready) == 0:
			submit = false
		case len(remaining) == 0 && now.Sub(lastSent) < c.cfg.MaxDelay:
			submit = false
		default:
			submit = true
		}

		if !submit {
			pending = append(ready, remaining...)
			select {
			case <-c.stopCh:
				return
			case <-c.cfg.clock.After(c.cfg.PollInterval):
			}
			continue
		}

		if c.cfg.metrics != nil {
			c.cfg.metrics.QueueDepth.Set(float64(len(remaining)))
		}

		msgCount := 0
		for _, b := range ready {
			msgCount += len(b.Messages)
		}

		if logging.IsDebug(c.logger) {
			ids := make([]string, len(ready))
			for i, b := range ready {
				ids[i] = b.ID().String()
			}
			c.logger.Debug("submitting transaction", logging.Number("batches", len(ready)), logging.Number("messages", msgCount), slog.Any("batch_ids", ids))
		}

		start := c.cfg.clock.Now()
		submitReady[M, E](context.Background(), ready, c.send, c.cfg.metrics)
		if c.cfg.metrics != nil {
			c.cfg.metrics.SubmissionLatency.Observe(c.cfg.clock.Now().Sub(start).Seconds())
		}
		lastSent = c.cfg.clock.Now()
		pending = remaining

		if c.cfg.metrics != nil {
			c.cfg.metrics.Submissions.Inc()
			c.cfg.metrics.MessagesPerSubmit.Observe(float64(msgCount))
		}
	}
}
