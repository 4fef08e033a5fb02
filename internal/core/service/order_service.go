package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aurorastore/shop-backend/internal/api/metrics"
	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

const orderIDPrefix = "order_"

// OrderService owns create/update operations on the order collection.
type OrderService struct {
	store  ports.Store
	tokens ports.TokenSource
	log    zerolog.Logger
}

func NewOrderService(store ports.Store, tokens ports.TokenSource, log zerolog.Logger) *OrderService {
	return &OrderService{store: store, tokens: tokens, log: log}
}

// Create implements ports.OrderService. The payload is stored as-is apart
// from the server-generated id.
func (s *OrderService) Create(ctx context.Context, payload map[string]any) (domain.Order, error) {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	order := domain.Order(payload).Clone()
	order["id"] = s.tokens.Next(orderIDPrefix)

	snap.Orders = append(snap.Orders, order)
	if err := s.store.WriteAll(ctx, snap); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	metrics.OrdersCreatedTotal.Inc()
	s.log.Info().Str("order_id", order.ID()).Msg("order created")
	return order, nil
}

// Update implements ports.OrderService. Every key in patch overwrites the
// stored order; keys absent from patch survive untouched.
func (s *OrderService) Update(ctx context.Context, orderID string, patch map[string]any) (domain.Order, error) {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	idx := snap.FindOrder(orderID)
	if idx < 0 {
		return nil, domain.ErrOrderNotFound
	}

	snap.Orders[idx] = snap.Orders[idx].Merge(patch)
	if err := s.store.WriteAll(ctx, snap); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	metrics.OrderUpdatesTotal.Inc()
	s.log.Info().Str("order_id", orderID).Int("patched_keys", len(patch)).Msg("order updated")
	return snap.Orders[idx], nil
}
