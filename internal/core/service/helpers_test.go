package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aurorastore/shop-backend/internal/core/domain"
)

// memStore is an in-memory Store with injectable failures and a write
// counter, so tests can assert that failed operations never persist.
type memStore struct {
	mu         sync.Mutex
	snap       *domain.Snapshot
	failReads  bool
	failWrites bool
	writes     int
}

func newMemStore() *memStore {
	return &memStore{snap: domain.NewSnapshot()}
}

func (m *memStore) ReadAll(_ context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failReads {
		return nil, domain.ErrStoreUnavailable
	}
	return copySnapshot(m.snap), nil
}

func (m *memStore) WriteAll(_ context.Context, snap *domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites {
		return domain.ErrStoreUnavailable
	}
	m.snap = copySnapshot(snap)
	m.writes++
	return nil
}

func (m *memStore) Ping(_ context.Context) error { return nil }

func (m *memStore) current() *domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySnapshot(m.snap)
}

func copySnapshot(s *domain.Snapshot) *domain.Snapshot {
	c := domain.NewSnapshot()
	c.Users = append(c.Users, s.Users...)
	for _, o := range s.Orders {
		c.Orders = append(c.Orders, o.Clone())
	}
	for _, t := range s.Tickets {
		ticket := t
		ticket.Messages = append([]domain.Message{}, t.Messages...)
		c.Tickets = append(c.Tickets, ticket)
	}
	return c
}

// seqTokens issues deterministic ids: prefix1, prefix2, ...
type seqTokens struct{ n int }

func (s *seqTokens) Next(prefix string) string {
	s.n++
	return fmt.Sprintf("%s%d", prefix, s.n)
}

// recordingNotifier captures every notification.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []string // "userID:text"
}

func (n *recordingNotifier) Notify(_ context.Context, userID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, fmt.Sprintf("%d:%s", userID, text))
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func testLogger() zerolog.Logger { return zerolog.Nop() }

// signWidgetFields computes the widget signature the way the provider does,
// so tests can build valid payloads for arbitrary field sets.
func signWidgetFields(fields map[string]string, botToken string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k != "hash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+fields[k])
	}

	secret := sha256.Sum256([]byte(botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
