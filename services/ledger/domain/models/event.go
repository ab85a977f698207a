package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is a named occasion with a date, location, and responsible
// administrator. Events are created and edited independently of stock;
// allocations attach to them via EventStock records.
type Event struct {
	ID            uuid.UUID
	Name          string
	Location      string
	Date          time.Time
	Administrator string
	CreatedAt     time.Time
}

// NewEvent constructs a valid Event with generated ID.
func NewEvent(name, location string, date time.Time, administrator string) (*Event, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("event name must not be empty")
	}
	if len(name) > maxItemNameLength {
		return nil, fmt.Errorf("event name must not exceed %d characters", maxItemNameLength)
	}
	if strings.TrimSpace(administrator) == "" {
		return nil, fmt.Errorf("administrator must be set")
	}
	return &Event{
		ID:            uuid.New(),
		Name:          name,
		Location:      location,
		Date:          date.UTC(),
		Administrator: administrator,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// IsUpcoming reports whether the event lies in the future relative to now.
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.Date.After(now)
}
