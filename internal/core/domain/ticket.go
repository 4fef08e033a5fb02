package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// TicketStatus represents the conversation state of a ticket.
type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

var ErrTicketNotFound = errors.New("ticket not found")

// broadcastSentinel is the wire value for a ticket addressed to every user.
const broadcastSentinel = "all"

// Recipient is either a single user id or the broadcast sentinel "all".
// On the wire it is a JSON number for a user and the string "all" for a
// broadcast, matching the persisted document layout.
type Recipient struct {
	Broadcast bool
	UserID    int64
}

// UserRecipient addresses a ticket to one specific user.
func UserRecipient(id int64) Recipient {
	return Recipient{UserID: id}
}

// AllRecipients addresses a ticket to every user.
func AllRecipients() Recipient {
	return Recipient{Broadcast: true}
}

// Includes reports whether a ticket with this recipient is visible to id.
func (r Recipient) Includes(id int64) bool {
	return r.Broadcast || r.UserID == id
}

func (r Recipient) MarshalJSON() ([]byte, error) {
	if r.Broadcast {
		return json.Marshal(broadcastSentinel)
	}
	return json.Marshal(r.UserID)
}

func (r *Recipient) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != broadcastSentinel {
			return fmt.Errorf("recipient: unknown sentinel %q", s)
		}
		*r = Recipient{Broadcast: true}
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("recipient: %w", err)
	}
	*r = Recipient{UserID: id}
	return nil
}

// MarshalBSONValue keeps the same dual representation in the Mongo driver:
// string sentinel for broadcasts, int64 for a single user.
func (r Recipient) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r.Broadcast {
		return bson.MarshalValue(broadcastSentinel)
	}
	return bson.MarshalValue(r.UserID)
}

func (r *Recipient) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	if s, ok := rv.StringValueOK(); ok {
		if s != broadcastSentinel {
			return fmt.Errorf("recipient: unknown sentinel %q", s)
		}
		*r = Recipient{Broadcast: true}
		return nil
	}
	id, ok := rv.AsInt64OK()
	if !ok {
		return fmt.Errorf("recipient: unexpected bson type %s", t)
	}
	*r = Recipient{UserID: id}
	return nil
}

// Message is one entry in a ticket's append-only conversation.
type Message struct {
	SenderID  int64     `json:"senderId" bson:"senderId"`
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Ticket is a support conversation addressed to one user or broadcast to
// all of them. Messages are only ever appended, never reordered or removed.
type Ticket struct {
	TicketID  string       `json:"ticketId" bson:"ticketId"`
	UserID    Recipient    `json:"userId" bson:"userId"`
	Subject   string       `json:"subject" bson:"subject"`
	Status    TicketStatus `json:"status" bson:"status"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	Messages  []Message    `json:"messages" bson:"messages"`
}
