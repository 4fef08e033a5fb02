package ports

import (
	"context"

	"github.com/aurorastore/shop-backend/internal/core/domain"
)

// AdminData is the privileged full-dataset block attached to the view of an
// admin caller. It is withheld entirely for non-admin roles.
type AdminData struct {
	AllOrders  []domain.Order  `json:"allOrders"`
	AllTickets []domain.Ticket `json:"allTickets"`
	AllUsers   []domain.User   `json:"allUsers"`
}

// ProjectedView is the role-filtered slice of the dataset for one caller.
type ProjectedView struct {
	Orders    []domain.Order  `json:"orders"`
	Tickets   []domain.Ticket `json:"tickets"`
	AdminData *AdminData      `json:"adminData,omitempty"`
}

// ProjectionService computes the per-caller view of orders and tickets.
type ProjectionService interface {
	// Project fails with domain.ErrUserNotFound when the caller is unknown.
	Project(ctx context.Context, userID int64) (*ProjectedView, error)
}
