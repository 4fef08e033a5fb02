package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// tokenSource issues time-derived identifiers such as order_1756600000000.
// The last issued millisecond is remembered so that rapid successive calls
// (or a clock stepping backwards) still produce strictly increasing values.
type tokenSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTokenSource returns a wall-clock backed TokenSource.
func NewTokenSource() ports.TokenSource {
	return &tokenSource{now: time.Now}
}

func (t *tokenSource) Next(prefix string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ms := t.now().UnixMilli()
	if ms <= t.last {
		ms = t.last + 1
	}
	t.last = ms
	return fmt.Sprintf("%s%d", prefix, ms)
}
