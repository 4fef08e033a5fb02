package handler

import "github.com/aurorastore/shop-backend/internal/core/domain"

// The order/ticket/admin routes speak the storefront's historical envelope:
// {"success": true, ...} on the happy path, {"success": false, "message"}
// on addressed-entity misses.

type successResponse struct {
	Success bool `json:"success"`
}

type orderResponse struct {
	Success bool         `json:"success"`
	Order   domain.Order `json:"order"`
}

type ticketResponse struct {
	Success bool           `json:"success"`
	Ticket  *domain.Ticket `json:"ticket"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}
