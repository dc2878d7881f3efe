// Package batch implements the batching message sink (L5): a long-lived
// worker that accepts per-caller message groups, coalesces them into
// transactions subject to count and byte-size limits, submits them through
// an underlying sender.Sender, and routes the per-transaction event slices
// back to each caller.
package batch

import (
	"github.com/google/uuid"
)

// Result is what a MessageBatch's reply channel is fulfilled with exactly
// once: either the event lists for every message in the batch, in order, or
// the error the underlying submission (or the sink itself) produced.
type Result[E any] struct {
	Events [][]E
	Err    error
}

// MessageBatch is an immutable caller-visible unit of work: a slice of
// messages plus the single-use reply channel the worker fulfills exactly
// once. The reply channel is buffered with capacity 1 so the worker never
// blocks delivering a reply to a caller who has stopped listening.
type MessageBatch[M any, E any] struct {
	id       uuid.UUID
	Messages []M
	reply    chan Result[E]
}

// ID returns the batch's correlation identifier, for logging.
func (b *MessageBatch[M, E]) ID() uuid.UUID {
	return b.id
}

func newMessageBatch[M any, E any](msgs []M) *MessageBatch[M, E] {
	return &MessageBatch[M, E]{
		id:       uuid.New(),
		Messages: msgs,
		reply:    make(chan Result[E], 1),
	}
}

// deliver fulfills the batch's reply exactly once. It never blocks: the
// channel is buffered to 1 and the worker is its only writer.
func (b *MessageBatch[M, E]) deliver(res Result[E]) {
	b.reply <- res
}
