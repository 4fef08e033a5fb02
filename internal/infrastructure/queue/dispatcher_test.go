package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type captureSender struct {
	mu   sync.Mutex
	byID map[int64][]string
	done chan struct{}
	want int
	got  int
}

func newCaptureSender(want int) *captureSender {
	return &captureSender{byID: make(map[int64][]string), done: make(chan struct{}), want: want}
}

func (s *captureSender) Notify(ctx context.Context, userID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[userID] = append(s.byID[userID], text)
	s.got++
	if s.got == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_DeliversAll(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := newCaptureSender(6)
	d := NewDispatcher(3, sender, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < 3; i++ {
		_ = d.Notify(ctx, 42, "a")
		_ = d.Notify(ctx, 7, "b")
	}

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deliveries")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.byID[42]) != 3 || len(sender.byID[7]) != 3 {
		t.Fatalf("unexpected deliveries: %v", sender.byID)
	}
}

func TestDispatcher_PerUserOrderPreserved(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := newCaptureSender(3)
	d := NewDispatcher(4, sender, zerolog.Nop())
	d.Start(ctx)

	_ = d.Notify(ctx, 42, "first")
	_ = d.Notify(ctx, 42, "second")
	_ = d.Notify(ctx, 42, "third")

	select {
	case <-sender.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for deliveries")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	got := sender.byID[42]
	if got[0] != "first" || got[1] != "second" || got[2] != "third" {
		t.Fatalf("order not preserved: %v", got)
	}
}

func TestDispatcher_SameUserSameShard(t *testing.T) {
	d := NewDispatcher(4, newCaptureSender(0), zerolog.Nop())
	first := d.shardIndex(42)
	for i := 0; i < 10; i++ {
		if d.shardIndex(42) != first {
			t.Fatalf("shard index not stable for a user")
		}
	}
}
