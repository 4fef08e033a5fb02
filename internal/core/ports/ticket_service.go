package ports

import (
	"context"

	"github.com/aurorastore/shop-backend/internal/core/domain"
)

// TicketService owns the ticket collection and its append-only message
// threads.
type TicketService interface {
	// Open creates an open ticket with a single initial message from userID.
	Open(ctx context.Context, userID int64, subject, message string) (*domain.Ticket, error)
	// Reply appends a message and forces the ticket back to open, whatever
	// its prior status. Fails with domain.ErrTicketNotFound.
	Reply(ctx context.Context, ticketID string, senderID int64, text string) (*domain.Ticket, error)
	// Broadcast creates a closed announcement ticket addressed to all users.
	Broadcast(ctx context.Context, adminID int64, subject, message string) (*domain.Ticket, error)
	// DirectMessage creates an open ticket addressed to one target user.
	DirectMessage(ctx context.Context, adminID, targetUserID int64, subject, message string) (*domain.Ticket, error)
}
