package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/denialp88/tickets/internal/model"
)

// TransactionRepository defines transaction persistence operations.
type TransactionRepository interface {
	Create(ctx context.Context, txn *model.Transaction) error
	FindByID(ctx context.Context, id uint) (*model.Transaction, error)
	ListByEvent(ctx context.Context, eventID uint) ([]model.Transaction, error)
	ListAllWithEventName(ctx context.Context) ([]model.TransactionWithEvent, error)
	Delete(ctx context.Context, id uint) error
	UpdateCommissionStatus(ctx context.Context, id uint, status model.CommissionStatus, paidAt *time.Time) error
	MarkEventCommissionsPaid(ctx context.Context, eventID uint, paidAt time.Time) error
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *model.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*model.Transaction, error) {
	var txn model.Transaction
	if err := r.db.WithContext(ctx).First(&txn, id).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) ListByEvent(ctx context.Context, eventID uint) ([]model.Transaction, error) {
	var txns []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("date DESC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// ListAllWithEventName returns every transaction joined with its event's name,
// newest first.
func (r *transactionRepository) ListAllWithEventName(ctx context.Context) ([]model.TransactionWithEvent, error) {
	var rows []model.TransactionWithEvent
	if err := r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Select("transactions.*, events.name AS event_name").
		Joins("JOIN events ON events.id = transactions.event_id").
		Order("transactions.date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Transaction{}, id).Error
}

// UpdateCommissionStatus sets the status and paid-date on one transaction.
// paidAt is nil when moving back to pending.
func (r *transactionRepository) UpdateCommissionStatus(ctx context.Context, id uint, status model.CommissionStatus, paidAt *time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"commission_status":  status,
			"commission_paid_at": paidAt,
		}).Error
}

// MarkEventCommissionsPaid flips every transaction of the event with a
// non-zero commission to paid. Zero-commission rows are left untouched.
func (r *transactionRepository) MarkEventCommissionsPaid(ctx context.Context, eventID uint, paidAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("event_id = ? AND commission_amount > 0", eventID).
		Updates(map[string]interface{}{
			"commission_status":  model.CommissionStatusPaid,
			"commission_paid_at": paidAt,
		}).Error
}
