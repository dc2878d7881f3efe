package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/icellan/ibc-relayer-core/internal/metrics"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSubmitReadyDemuxesInOrder(t *testing.T) {
	a := mkBatch(1, 2)
	b := mkBatch(3, 4, 5)

	send := func(_ context.Context, msgs []uint32) ([][]uint32, error) {
		out := make([][]uint32, len(msgs))
		for i, m := range msgs {
			out[i] = []uint32{m}
		}
		return out, nil
	}

	submitReady[uint32, uint32](context.Background(), []*MessageBatch[uint32, uint32]{a, b}, send, nil)

	ra := <-a.reply
	rb := <-b.reply
	if ra.Err != nil || len(ra.Events) != 2 {
		t.Fatalf("a result: %+v", ra)
	}
	if rb.Err != nil || len(rb.Events) != 3 {
		t.Fatalf("b result: %+v", rb)
	}
}

func TestSubmitReadyShortEventsDegradeGracefully(t *testing.T) {
	a := mkBatch(1, 2)
	b := mkBatch(3)

	// Violates the chain's length contract on purpose: only one event
	// list for three input messages.
	send := func(_ context.Context, msgs []uint32) ([][]uint32, error) {
		return [][]uint32{{1}}, nil
	}

	submitReady[uint32, uint32](context.Background(), []*MessageBatch[uint32, uint32]{a, b}, send, nil)

	ra := <-a.reply
	rb := <-b.reply
	if ra.Err != nil || len(ra.Events) != 1 {
		t.Fatalf("a should receive what exists, got %+v", ra)
	}
	if rb.Err != nil || len(rb.Events) != 0 {
		t.Fatalf("b should receive an empty slice, not a panic, got %+v", rb)
	}
}

func TestSubmitReadyErrorFansOutToAll(t *testing.T) {
	a := mkBatch(1)
	b := mkBatch(2)
	wantErr := errors.New("chain unavailable")

	send := func(_ context.Context, msgs []uint32) ([][]uint32, error) {
		return nil, relay.ErrSubmission(wantErr)
	}

	m := metrics.New()
	submitReady[uint32, uint32](context.Background(), []*MessageBatch[uint32, uint32]{a, b}, send, m)

	ra := <-a.reply
	rb := <-b.reply
	if !errors.Is(ra.Err, wantErr) || !errors.Is(rb.Err, wantErr) {
		t.Fatalf("expected both to observe the same error, got a=%v b=%v", ra.Err, rb.Err)
	}

	if got := testutil.ToFloat64(m.SubmissionErrors.WithLabelValues("submission")); got != 1 {
		t.Fatalf("expected submission_errors_total{kind=submission} to be 1, got %v", got)
	}
}
