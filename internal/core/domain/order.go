package domain

import "errors"

var ErrOrderNotFound = errors.New("order not found")

// Order is an open-shape document: the storefront accepts arbitrary
// payment/fulfillment fields and never validates their shape at this layer.
// Only two keys carry meaning for the backend: "id" (server-generated) and
// "buyerId" (foreign key to User.ID).
type Order map[string]any

// ID returns the server-generated order identifier, or "" when unset.
func (o Order) ID() string {
	id, _ := o["id"].(string)
	return id
}

// BuyerID returns the buyer's user id. JSON numbers decode as float64,
// so both numeric representations are accepted.
func (o Order) BuyerID() (int64, bool) {
	switch v := o["buyerId"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	}
	return 0, false
}

// Clone returns a shallow copy. Nested values remain shared, matching the
// shallow-merge semantics of order updates.
func (o Order) Clone() Order {
	c := make(Order, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// Merge overwrites every key present in patch, preserving all others.
// Patch wins on conflict, including on "id" if a caller chooses to send one.
func (o Order) Merge(patch map[string]any) Order {
	merged := o.Clone()
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}
