package ports

import "context"

// Notifier pushes an out-of-band message to a user (their Telegram chat).
// Delivery is best-effort: callers log failures and never fail the request
// that triggered the notification.
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
}
