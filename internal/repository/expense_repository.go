package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/denialp88/tickets/internal/model"
)

// ExpenseRepository defines expense persistence operations.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, id uint) (*model.Expense, error)
	ListAllWithEventName(ctx context.Context) ([]model.ExpenseWithEvent, error)
	Delete(ctx context.Context, id uint) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, id uint) (*model.Expense, error) {
	var expense model.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListAllWithEventName returns every expense with its event's name when
// linked, newest first. General expenses have an empty event name.
func (r *expenseRepository) ListAllWithEventName(ctx context.Context) ([]model.ExpenseWithEvent, error) {
	var rows []model.ExpenseWithEvent
	if err := r.db.WithContext(ctx).
		Model(&model.Expense{}).
		Select("expenses.*, events.name AS event_name").
		Joins("LEFT JOIN events ON events.id = expenses.event_id").
		Order("expenses.date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Expense{}, id).Error
}
