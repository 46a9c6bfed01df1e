package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "github.com/denialp88/tickets/internal/errors"
	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/repository"
)

// EventInput carries the admin-settable fields of an event.
type EventInput struct {
	Name                string
	Date                time.Time
	Location            string
	Description         string
	CommissionPerTicket decimal.Decimal
	IsAdminEvent        bool
}

// EventService handles event management and the role-scoped event listing.
type EventService interface {
	List(ctx context.Context) ([]model.Event, error)
	ListRedacted(ctx context.Context) ([]model.EventSummary, error)
	GetWithTransactions(ctx context.Context, id uint) (*model.Event, []model.Transaction, error)
	Create(ctx context.Context, in EventInput) (*model.Event, error)
	Update(ctx context.Context, id uint, in EventInput) (*model.Event, error)
	Delete(ctx context.Context, id uint) error
}

type eventService struct {
	eventRepo repository.EventRepository
	txnRepo   repository.TransactionRepository
}

// NewEventService creates a new event service.
func NewEventService(eventRepo repository.EventRepository, txnRepo repository.TransactionRepository) EventService {
	return &eventService{eventRepo: eventRepo, txnRepo: txnRepo}
}

func (s *eventService) List(ctx context.Context) ([]model.Event, error) {
	return s.eventRepo.List(ctx)
}

// ListRedacted returns the booker projection: id, name, date and location
// only. Commission rates and the admin-event flag stay admin-side.
func (s *eventService) ListRedacted(ctx context.Context) ([]model.EventSummary, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.EventSummary, 0, len(events))
	for _, ev := range events {
		summaries = append(summaries, ev.Summary())
	}
	return summaries, nil
}

// GetWithTransactions returns an event and its transactions, newest first.
func (s *eventService) GetWithTransactions(ctx context.Context, id uint) (*model.Event, []model.Transaction, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrEventNotFound
		}
		return nil, nil, fmt.Errorf("find event: %w", err)
	}

	txns, err := s.txnRepo.ListByEvent(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list event transactions: %w", err)
	}
	return event, txns, nil
}

func (s *eventService) Create(ctx context.Context, in EventInput) (*model.Event, error) {
	event := &model.Event{
		Name:                in.Name,
		Date:                in.Date,
		Location:            in.Location,
		Description:         in.Description,
		CommissionPerTicket: in.CommissionPerTicket,
		IsAdminEvent:        in.IsAdminEvent,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uint, in EventInput) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	event.Name = in.Name
	event.Date = in.Date
	event.Location = in.Location
	event.Description = in.Description
	event.CommissionPerTicket = in.CommissionPerTicket
	event.IsAdminEvent = in.IsAdminEvent

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

// Delete removes an event; its transactions go with it while linked expenses
// only lose their event reference.
func (s *eventService) Delete(ctx context.Context, id uint) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
