// Package realtime fans change events out to websocket subscribers.
//
// Events are hints, not state: they carry identifiers only and may arrive
// more than once or out of order. Subscribers re-query the API to reconcile.
package realtime

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventInsert = "INSERT"

	TableMessages     = "messages"
	TableApplications = "applications"
)

// Event describes a row change addressed to a set of users.
type Event struct {
	Type         string      `json:"type"`
	Table        string      `json:"table"`
	RecordID     uuid.UUID   `json:"record_id"`
	RoomID       uuid.UUID   `json:"room_id"`
	Participants []uuid.UUID `json:"participants"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Publisher delivers events to whoever is listening. Implementations must not
// block on slow subscribers.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
