package ports

import (
	"context"

	"github.com/aurorastore/shop-backend/internal/core/domain"
)

// OrderService owns the order collection. Payload shape is deliberately
// unvalidated at this layer: any mapping is accepted.
type OrderService interface {
	// Create assigns a fresh id, stores the order, and returns it.
	Create(ctx context.Context, payload map[string]any) (domain.Order, error)
	// Update shallow-merges patch over the stored order (patch wins on
	// conflict, absent keys are preserved). Fails with
	// domain.ErrOrderNotFound when the id is unknown.
	Update(ctx context.Context, orderID string, patch map[string]any) (domain.Order, error)
}
