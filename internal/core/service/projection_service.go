package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aurorastore/shop-backend/internal/core/domain"
	"github.com/aurorastore/shop-backend/internal/core/ports"
)

// ProjectionService computes the role-filtered view of the dataset for one
// caller. It is read-only.
type ProjectionService struct {
	store ports.Store
	log   zerolog.Logger
}

func NewProjectionService(store ports.Store, log zerolog.Logger) *ProjectionService {
	return &ProjectionService{store: store, log: log}
}

// Project implements ports.ProjectionService.
func (s *ProjectionService) Project(ctx context.Context, userID int64) (*ports.ProjectedView, error) {
	snap, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	user := snap.FindUser(userID)
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	view := &ports.ProjectedView{
		Orders:  []domain.Order{},
		Tickets: []domain.Ticket{},
	}
	for _, o := range snap.Orders {
		if buyer, ok := o.BuyerID(); ok && buyer == userID {
			view.Orders = append(view.Orders, o)
		}
	}
	for _, t := range snap.Tickets {
		if t.UserID.Includes(userID) {
			view.Tickets = append(view.Tickets, t)
		}
	}

	// Admin callers additionally receive the full unfiltered dataset.
	if user.Role == domain.RoleAdmin {
		view.AdminData = &ports.AdminData{
			AllOrders:  snap.Orders,
			AllTickets: snap.Tickets,
			AllUsers:   snap.Users,
		}
	}

	return view, nil
}
