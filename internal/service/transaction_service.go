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

// dashboardCacheKey is shared with the report service; every transaction
// mutation invalidates the cached dashboard.
const dashboardCacheKey = "reports:dashboard"

// TransactionInput carries the caller-settable fields of a new transaction.
type TransactionInput struct {
	EventID          uint
	Type             model.TransactionType
	NumTickets       int
	PricePerTicket   decimal.Decimal
	PartyName        string
	PartyMobile      string
	UPIID            string
	PaymentReference string
	ProofImagePath   string
	Date             time.Time
	Notes            string
	NoCommission     bool
}

// TransactionService handles transaction creation and commission lifecycle.
type TransactionService interface {
	Create(ctx context.Context, role model.Role, in TransactionInput) (*model.Transaction, error)
	Get(ctx context.Context, id uint) (*model.Transaction, error)
	ListAll(ctx context.Context) ([]model.TransactionWithEvent, error)
	Delete(ctx context.Context, id uint) error
	UpdateCommissionStatus(ctx context.Context, id uint, status model.CommissionStatus) (*model.Transaction, error)
	MarkEventCommissionsPaid(ctx context.Context, eventID uint) error
}

type transactionService struct {
	txnRepo   repository.TransactionRepository
	eventRepo repository.EventRepository
	cache     *cache.Client
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo repository.TransactionRepository, eventRepo repository.EventRepository, cache *cache.Client) TransactionService {
	return &transactionService{
		txnRepo:   txnRepo,
		eventRepo: eventRepo,
		cache:     cache,
	}
}

// Create records a transaction with its derived amounts. Bookers may only
// record purchases, and only admins may request the no-commission override.
// The fully computed record is persisted in a single insert; commission
// status always starts pending.
func (s *transactionService) Create(ctx context.Context, role model.Role, in TransactionInput) (*model.Transaction, error) {
	if !in.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if role == model.RoleBooker && in.Type == model.TransactionTypeSale {
		return nil, apperrors.ErrBookerSaleForbidden
	}

	event, err := s.eventRepo.FindByID(ctx, in.EventID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	noCommission := in.NoCommission && role == model.RoleAdmin
	amounts := ComputeCommission(event.CommissionPerTicket, event.IsAdminEvent, noCommission, in.NumTickets, in.PricePerTicket)

	txn := &model.Transaction{
		EventID:          in.EventID,
		Type:             in.Type,
		NumTickets:       in.NumTickets,
		PricePerTicket:   in.PricePerTicket,
		TotalAmount:      amounts.Total,
		PartyName:        in.PartyName,
		PartyMobile:      in.PartyMobile,
		UPIID:            in.UPIID,
		PaymentReference: in.PaymentReference,
		ProofImagePath:   in.ProofImagePath,
		CommissionAmount: amounts.Commission,
		NetAmount:        amounts.Net,
		CommissionStatus: model.CommissionStatusPending,
		Date:             in.Date,
		Notes:            in.Notes,
	}

	if err := s.txnRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return txn, nil
}

func (s *transactionService) Get(ctx context.Context, id uint) (*model.Transaction, error) {
	txn, err := s.txnRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) ListAll(ctx context.Context) ([]model.TransactionWithEvent, error) {
	return s.txnRepo.ListAllWithEventName(ctx)
}

func (s *transactionService) Delete(ctx context.Context, id uint) error {
	if err := s.txnRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return nil
}

// UpdateCommissionStatus moves one transaction between pending and paid, in
// either direction. Moving to paid stamps the paid-date; moving back clears it.
func (s *transactionService) UpdateCommissionStatus(ctx context.Context, id uint, status model.CommissionStatus) (*model.Transaction, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidCommissionStatus
	}

	if _, err := s.txnRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction: %w", err)
	}

	var paidAt *time.Time
	if status == model.CommissionStatusPaid {
		now := time.Now()
		paidAt = &now
	}

	if err := s.txnRepo.UpdateCommissionStatus(ctx, id, status, paidAt); err != nil {
		return nil, fmt.Errorf("update commission status: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return s.txnRepo.FindByID(ctx, id)
}

// MarkEventCommissionsPaid is the bulk pending-to-paid transition for one
// event. It only touches rows with a non-zero commission and is idempotent;
// it never reverses a paid transaction.
func (s *transactionService) MarkEventCommissionsPaid(ctx context.Context, eventID uint) error {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrEventNotFound
		}
		return fmt.Errorf("find event: %w", err)
	}

	if err := s.txnRepo.MarkEventCommissionsPaid(ctx, eventID, time.Now()); err != nil {
		return fmt.Errorf("mark commissions paid: %w", err)
	}

	_ = s.cache.Delete(ctx, dashboardCacheKey)
	return nil
}
