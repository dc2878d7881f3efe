package runtime

import (
	"testing"
	"time"
)

func TestNewReturnsRealClock(t *testing.T) {
	a := New()
	b := New()
	if a == nil || b == nil {
		t.Fatal("expected a non-nil clock")
	}
	now := a.Now()
	if time.Since(now) > time.Second {
		t.Fatalf("expected New() to report real wall-clock time, got %v", now)
	}
}

func TestSleepNoOpOnNonPositiveDuration(t *testing.T) {
	mock := NewMock()
	done := make(chan struct{})
	go func() {
		Sleep(mock, 0)
		Sleep(mock, -time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sleep with d<=0 should return immediately without waiting on the clock")
	}
}

func TestSleepUnblocksOnMockAdvance(t *testing.T) {
	mock := NewMock()
	done := make(chan struct{})
	go func() {
		Sleep(mock, 50*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Sleep returned before the mock clock advanced")
	case <-time.After(20 * time.Millisecond):
	}

	mock.Add(50 * time.Millisecond)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sleep did not unblock after the mock clock advanced past the duration")
	}
}
