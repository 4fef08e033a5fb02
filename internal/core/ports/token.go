package ports

// TokenSource issues unique, monotonically increasing identifiers with a
// collection prefix ("order_", "t_"). Implementations must not collide
// under rapid successive calls within the same process.
type TokenSource interface {
	Next(prefix string) string
}
