package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	ledgerdomain "github.com/ghuser/stockpilot/services/ledger/domain"
	"github.com/ghuser/stockpilot/services/ledger/domain/models"
	"github.com/ghuser/stockpilot/services/ledger/domain/repositories"
)

// EventService orchestrates CRUD on events. Allocation of stock to an event
// is handled by LedgerService; deleting an event cascades its allocations in
// the repository.
type EventService struct {
	repo repositories.EventRepository
}

// NewEventService returns an EventService wired with the given repository.
func NewEventService(repo repositories.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// Create validates and persists a new Event.
func (s *EventService) Create(ctx context.Context, name, location string, date time.Time, administrator string) (*models.Event, error) {
	event, err := models.NewEvent(name, location, date, administrator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ledgerdomain.ErrInvalidEventName, err)
	}
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}
	return event, nil
}

// GetByID retrieves one event.
func (s *EventService) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// List returns all events.
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update applies an edit to an existing event.
func (s *EventService) Update(ctx context.Context, id uuid.UUID, name, location string, date time.Time, administrator string) (*models.Event, error) {
	updated, err := models.NewEvent(name, location, date, administrator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ledgerdomain.ErrInvalidEventName, err)
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	event.Name = updated.Name
	event.Location = updated.Location
	event.Date = updated.Date
	event.Administrator = updated.Administrator

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// Delete removes an event together with its stock allocations. Sales recorded
// under the event survive as historical records.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
