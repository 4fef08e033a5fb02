// Package mongo implements the Store port on MongoDB. Each collection of
// the snapshot maps to one Mongo collection, but the read/write contract is
// still whole-snapshot: ReadAll loads all three collections, WriteAll
// replaces them.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aurorastore/shop-backend/internal/api/metrics"
	"github.com/aurorastore/shop-backend/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

const (
	collUsers   = "users"
	collOrders  = "orders"
	collTickets = "tickets"
)

// Config captures the minimal settings for establishing a connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Store persists snapshots across three Mongo collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a client, verifies connectivity with a ping, and
// returns the store. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ReadAll loads every document of the three collections into one snapshot.
func (s *Store) ReadAll(ctx context.Context) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	snap := domain.NewSnapshot()
	if err := s.loadAll(ctx, collUsers, &snap.Users); err != nil {
		return nil, err
	}
	if err := s.loadAll(ctx, collOrders, &snap.Orders); err != nil {
		return nil, err
	}
	if err := s.loadAll(ctx, collTickets, &snap.Tickets); err != nil {
		return nil, err
	}
	return snap, nil
}

// WriteAll replaces the three collections with the snapshot's contents.
func (s *Store) WriteAll(ctx context.Context, snap *domain.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	start := time.Now()
	if err := s.replaceAll(ctx, collUsers, toDocs(snap.Users)); err != nil {
		return err
	}
	if err := s.replaceAll(ctx, collOrders, toDocs(snap.Orders)); err != nil {
		return err
	}
	if err := s.replaceAll(ctx, collTickets, toDocs(snap.Tickets)); err != nil {
		return err
	}
	metrics.StoreWriteDuration.WithLabelValues("mongo").Observe(time.Since(start).Seconds())
	return nil
}

// Ping reports whether the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) loadAll(ctx context.Context, coll string, out any) error {
	cur, err := s.db.Collection(coll).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("find %s: %v: %w", coll, err, domain.ErrStoreUnavailable)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %v: %w", coll, err, domain.ErrStoreUnavailable)
	}
	return nil
}

func (s *Store) replaceAll(ctx context.Context, coll string, docs []any) error {
	c := s.db.Collection(coll)
	if _, err := c.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear %s: %v: %w", coll, err, domain.ErrStoreUnavailable)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := c.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %v: %w", coll, err, domain.ErrStoreUnavailable)
	}
	return nil
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i, it := range items {
		docs[i] = it
	}
	return docs
}
