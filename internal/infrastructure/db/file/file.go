// Package file implements the Store port on a single JSON document on disk,
// mirroring the original db.json layout: one object with users, orders, and
// tickets arrays. Reads and writes always move the whole snapshot.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurorastore/shop-backend/internal/api/metrics"
	"github.com/aurorastore/shop-backend/internal/core/domain"
)

// Store persists snapshots to one JSON file. A process-wide mutex
// serialises writers; cross-process access is not coordinated.
type Store struct {
	mu   sync.RWMutex
	path string
	log  zerolog.Logger
}

// Open prepares the store, creating the parent directory and an empty
// snapshot file when none exists yet.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}

	s := &Store{path: path, log: log}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.flush(domain.NewSnapshot()); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	return s, nil
}

// ReadAll loads the snapshot. A corrupted file degrades to an empty
// snapshot so the service stays available; the incident is logged.
func (s *Store) ReadAll(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %v: %w", s.path, err, domain.ErrStoreUnavailable)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("corrupted snapshot, serving empty collections")
		return domain.NewSnapshot(), nil
	}

	if snap.Users == nil {
		snap.Users = []domain.User{}
	}
	if snap.Orders == nil {
		snap.Orders = []domain.Order{}
	}
	if snap.Tickets == nil {
		snap.Tickets = []domain.Ticket{}
	}
	return &snap, nil
}

// WriteAll replaces the snapshot atomically (temp file + rename).
func (s *Store) WriteAll(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	if err := s.flush(snap); err != nil {
		return err
	}
	metrics.StoreWriteDuration.WithLabelValues("file").Observe(time.Since(start).Seconds())
	return nil
}

// Ping reports whether the snapshot file is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("ping %s: %v: %w", s.path, err, domain.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) flush(snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %v: %w", err, domain.ErrStoreUnavailable)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %v: %w", tmp, err, domain.ErrStoreUnavailable)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %v: %w", tmp, err, domain.ErrStoreUnavailable)
	}
	return nil
}
