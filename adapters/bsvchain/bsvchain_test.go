package bsvchain

import (
	"context"
	"testing"
)

func testScript() []byte {
	// OP_DUP OP_HASH160 <20 zero bytes> OP_EQUALVERIFY OP_CHECKSIG
	s := make([]byte, 0, 25)
	s = append(s, 0x76, 0xa9, 0x14)
	s = append(s, make([]byte, 20)...)
	s = append(s, 0x88, 0xac)
	return s
}

func TestEncodeProducesNonEmptyBytes(t *testing.T) {
	a := New("test-chain", 100)
	msg := Message{LockingScript: testScript(), Satoshis: 546}

	raw, err := a.Encode(context.Background(), msg, "signer")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(raw) == 0 {
		t.Fatalf("expected non-empty encoded transaction")
	}
}

func TestEstimateLenMatchesEncodedSize(t *testing.T) {
	a := New("test-chain", 100)
	msg := Message{LockingScript: testScript(), Satoshis: 546}

	raw, err := a.Encode(context.Background(), msg, "signer")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	n, err := a.EstimateLen(context.Background(), msg)
	if err != nil {
		t.Fatalf("EstimateLen: %v", err)
	}
	if n != len(raw) {
		t.Fatalf("EstimateLen=%d, encoded size=%d", n, len(raw))
	}
}

func TestEstimateLenRejectsEmptyScript(t *testing.T) {
	a := New("test-chain", 0)
	if _, err := a.EstimateLen(context.Background(), Message{}); err == nil {
		t.Fatalf("expected an error for a message with no locking script")
	}
}

func TestSubmitAdvancesHeight(t *testing.T) {
	a := New("test-chain", 10)
	msg := Message{LockingScript: testScript(), Satoshis: 1}

	before, err := a.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}

	events, err := a.Submit(context.Background(), []Message{msg, msg})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected one event list per message, got %d", len(events))
	}
	for _, es := range events {
		if len(es) != 1 || es[0].TxID == "" {
			t.Fatalf("expected a populated TxID, got %v", es)
		}
	}

	after, err := a.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if after.Height.RevisionHeight != before.Height.RevisionHeight+1 {
		t.Fatalf("expected height to advance by one submission, before=%d after=%d",
			before.Height.RevisionHeight, after.Height.RevisionHeight)
	}
}
