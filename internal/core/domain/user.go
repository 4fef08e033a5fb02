package domain

import "errors"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrInvalidSignature = errors.New("invalid login signature")
var ErrUserNotFound = errors.New("user not found")

// User models an identity verified through the Telegram login widget.
// ID is the provider-assigned Telegram user id and is the primary key of
// the users collection. Role is recomputed on every login and is never
// taken from a client payload.
type User struct {
	ID        int64  `json:"id" bson:"id"`
	FirstName string `json:"first_name" bson:"first_name"`
	Username  string `json:"username" bson:"username"`
	Role      string `json:"role" bson:"role"`
}
