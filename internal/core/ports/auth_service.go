package ports

import (
	"context"

	"github.com/aurorastore/shop-backend/internal/core/domain"
)

// AuthService verifies a Telegram login widget payload and binds the
// verified identity to a stored user record.
type AuthService interface {
	// Login validates the signed widget fields, upserts the user with a
	// freshly computed role, and returns a session token plus the stored
	// user. Fails with domain.ErrInvalidSignature when the payload does
	// not verify; no record is created or modified in that case.
	Login(ctx context.Context, fields map[string]string) (string, *domain.User, error)
}
