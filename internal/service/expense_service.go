package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/denialp88/tickets/internal/cache"
	apperrors "github.com/denialp88/tickets/internal/errors"
	"github.com/denialp88/tickets/internal/model"
	"github.com/denialp88/tickets/internal/repository"
)

// ExpenseInput carries the admin-settable fields of a new expense.
type ExpenseInput struct {
	EventID     *uint
	Category    model.ExpenseCategory
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Notes       string
}

// ExpenseService handles expense management.
type ExpenseService interface {
	List(ctx context.Context) ([]model.ExpenseWithEvent, error)
	Create(ctx context.Context, in ExpenseInput) (*model.Expense, error)
	Delete(ctx context.Context, id uint) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	eventRepo   repository.EventRepository
	cache       *cache.Client
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo repository.ExpenseRepository, eventRepo repository.EventRepository, cache *cache.Client) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		eventRepo:   eventRepo,
		cache:       cache,
	}
}

func (s *expenseService) List(ctx context.Context) ([]model.ExpenseWithEvent, error) {
	return s.expenseRepo.ListAllWithEventName(ctx)
}

// Create records an expense. The event link is optional but must point at an
// existing event when present.
func (s *expenseService) Create(ctx context.Context, in ExpenseInput) (*model.Expense, error) {
	if !in.Category.Valid() {
		return nil, apperrors.ErrInvalidExpenseCategory
	}

	if in.EventID != nil {
		if _, err := s.eventRepo.FindByID(ctx, *in.EventID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrEventNotFound
			}
			return nil, fmt.Errorf("find event: %w", err)
		}
	}

	expense := &model.Expense{
		EventID:     in.EventID,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		Notes:       in.Notes,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.expenseRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrExpenseNotFound
		}
		return fmt.Errorf("find expense: %w", err)
	}

	if err := s.expenseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return nil
}
