package ports

import (
	"context"

	"github.com/aurorastore/shop-backend/internal/core/domain"
)

// Store is the persistence boundary: an opaque document store with
// whole-snapshot read/write semantics. Drivers must serialise concurrent
// in-process writers; cross-process safety is explicitly out of scope.
type Store interface {
	// ReadAll returns the full persisted snapshot. Drivers degrade to an
	// empty snapshot on corrupted data rather than failing the request.
	ReadAll(ctx context.Context) (*domain.Snapshot, error)
	// WriteAll replaces the full persisted snapshot.
	WriteAll(ctx context.Context, snap *domain.Snapshot) error
	// Ping reports whether the backing medium is reachable.
	Ping(ctx context.Context) error
}
