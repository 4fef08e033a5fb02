package domain

import "errors"

var ErrStoreUnavailable = errors.New("store unavailable")

// Snapshot is the whole persisted state: three ordered collections read and
// written as a unit. Every store driver exchanges complete snapshots; there
// are no partial writes.
type Snapshot struct {
	Users   []User   `json:"users"`
	Orders  []Order  `json:"orders"`
	Tickets []Ticket `json:"tickets"`
}

// NewSnapshot returns an empty snapshot with non-nil collections, so it
// serialises as three empty arrays rather than nulls.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Users:   []User{},
		Orders:  []Order{},
		Tickets: []Ticket{},
	}
}

// FindUser returns the user with the given id, or nil.
func (s *Snapshot) FindUser(id int64) *User {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return &s.Users[i]
		}
	}
	return nil
}

// FindOrder returns the index of the order with the given id, or -1.
func (s *Snapshot) FindOrder(id string) int {
	for i := range s.Orders {
		if s.Orders[i].ID() == id {
			return i
		}
	}
	return -1
}

// FindTicket returns the index of the ticket with the given id, or -1.
func (s *Snapshot) FindTicket(id string) int {
	for i := range s.Tickets {
		if s.Tickets[i].TicketID == id {
			return i
		}
	}
	return -1
}
