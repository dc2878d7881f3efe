package sender

import (
	"context"
	"errors"
	"testing"

	"github.com/icellan/ibc-relayer-core/relayer/chain"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
)

func stubOps(submit func(ctx context.Context, msgs []uint32) ([][]uint32, error)) chain.ChainOps[uint32, uint32] {
	return chain.ChainOps[uint32, uint32]{ChainID: "stub", Submit: submit}
}

func TestDirectForwardsToTargetChain(t *testing.T) {
	r := &relay.Relay[uint32, uint32]{
		Src: stubOps(func(_ context.Context, msgs []uint32) ([][]uint32, error) {
			out := make([][]uint32, len(msgs))
			for i, m := range msgs {
				out[i] = []uint32{m + 1}
			}
			return out, nil
		}),
		Dst: stubOps(func(_ context.Context, msgs []uint32) ([][]uint32, error) {
			t.Fatal("dst should not be called for a src-targeted send")
			return nil, nil
		}),
	}

	send := Direct(r)
	events, err := send(context.Background(), relay.TargetSrc, []uint32{1, 2})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(events) != 2 || events[0][0] != 2 || events[1][0] != 3 {
		t.Fatalf("unexpected events: %v", events)
	}
}

func TestDirectWrapsSubmissionError(t *testing.T) {
	wantErr := errors.New("chain down")
	r := &relay.Relay[uint32, uint32]{
		Dst: stubOps(func(_ context.Context, msgs []uint32) ([][]uint32, error) {
			return nil, wantErr
		}),
	}

	send := Direct(r)
	_, err := send(context.Background(), relay.TargetDst, []uint32{1})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
