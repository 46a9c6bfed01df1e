package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/denialp88/tickets/internal/errors"
	"github.com/denialp88/tickets/internal/model"
)

func commissionedEvent() *model.Event {
	return &model.Event{
		ID:                  1,
		Name:                "Rock Night",
		CommissionPerTicket: decimal.RequireFromString("10"),
	}
}

func purchaseInput() TransactionInput {
	return TransactionInput{
		EventID:        1,
		Type:           model.TransactionTypePurchase,
		NumTickets:     5,
		PricePerTicket: decimal.RequireFromString("100"),
		PartyName:      "Acme Tickets",
		Date:           time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionService_Create_DerivedAmounts(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	eventRepo := new(MockEventRepository)
	svc := NewTransactionService(txnRepo, eventRepo, nil)

	eventRepo.On("FindByID", mock.Anything, uint(1)).Return(commissionedEvent(), nil)
	txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	txn, err := svc.Create(context.Background(), model.RoleBooker, purchaseInput())

	assert.NoError(t, err)
	assert.True(t, txn.TotalAmount.Equal(decimal.RequireFromString("500")))
	assert.True(t, txn.CommissionAmount.Equal(decimal.RequireFromString("50")))
	assert.True(t, txn.NetAmount.Equal(decimal.RequireFromString("450")))
	assert.Equal(t, model.CommissionStatusPending, txn.CommissionStatus)
	assert.Nil(t, txn.CommissionPaidAt)
}

func TestTransactionService_Create_AdminEventNoCommission(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	eventRepo := new(MockEventRepository)
	svc := NewTransactionService(txnRepo, eventRepo, nil)

	event := commissionedEvent()
	event.IsAdminEvent = true
	eventRepo.On("FindByID", mock.Anything, uint(1)).Return(event, nil)
	txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	txn, err := svc.Create(context.Background(), model.RoleBooker, purchaseInput())

	assert.NoError(t, err)
	assert.True(t, txn.CommissionAmount.IsZero())
	assert.True(t, txn.NetAmount.Equal(txn.TotalAmount))
}

func TestTransactionService_Create_NoCommissionOverride(t *testing.T) {
	in := purchaseInput()
	in.NoCommission = true

	t.Run("admin override honored", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		eventRepo := new(MockEventRepository)
		svc := NewTransactionService(txnRepo, eventRepo, nil)

		eventRepo.On("FindByID", mock.Anything, uint(1)).Return(commissionedEvent(), nil)
		txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		txn, err := svc.Create(context.Background(), model.RoleAdmin, in)

		assert.NoError(t, err)
		assert.True(t, txn.CommissionAmount.IsZero())
	})

	t.Run("booker override ignored", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		eventRepo := new(MockEventRepository)
		svc := NewTransactionService(txnRepo, eventRepo, nil)

		eventRepo.On("FindByID", mock.Anything, uint(1)).Return(commissionedEvent(), nil)
		txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		txn, err := svc.Create(context.Background(), model.RoleBooker, in)

		assert.NoError(t, err)
		assert.True(t, txn.CommissionAmount.Equal(decimal.RequireFromString("50")))
	})
}

func TestTransactionService_Create_BookerSaleForbidden(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	svc := NewTransactionService(txnRepo, new(MockEventRepository), nil)

	in := purchaseInput()
	in.Type = model.TransactionTypeSale

	_, err := svc.Create(context.Background(), model.RoleBooker, in)

	assert.ErrorIs(t, err, apperrors.ErrBookerSaleForbidden)
	txnRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTransactionService_Create_AdminSaleAllowed(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	eventRepo := new(MockEventRepository)
	svc := NewTransactionService(txnRepo, eventRepo, nil)

	eventRepo.On("FindByID", mock.Anything, uint(1)).Return(commissionedEvent(), nil)
	txnRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	in := purchaseInput()
	in.Type = model.TransactionTypeSale

	txn, err := svc.Create(context.Background(), model.RoleAdmin, in)

	assert.NoError(t, err)
	assert.Equal(t, model.TransactionTypeSale, txn.Type)
}

func TestTransactionService_Create_InvalidType(t *testing.T) {
	svc := NewTransactionService(new(MockTransactionRepository), new(MockEventRepository), nil)

	in := purchaseInput()
	in.Type = model.TransactionType("refund")

	_, err := svc.Create(context.Background(), model.RoleAdmin, in)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransactionType)
}

func TestTransactionService_Create_EventNotFound(t *testing.T) {
	eventRepo := new(MockEventRepository)
	svc := NewTransactionService(new(MockTransactionRepository), eventRepo, nil)

	eventRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), model.RoleAdmin, purchaseInput())
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestTransactionService_UpdateCommissionStatus(t *testing.T) {
	t.Run("marking paid stamps the date", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		svc := NewTransactionService(txnRepo, new(MockEventRepository), nil)

		pending := &model.Transaction{ID: 5, CommissionStatus: model.CommissionStatusPending}
		txnRepo.On("FindByID", mock.Anything, uint(5)).Return(pending, nil)
		txnRepo.On("UpdateCommissionStatus", mock.Anything, uint(5), model.CommissionStatusPaid, mock.MatchedBy(func(paidAt *time.Time) bool {
			return paidAt != nil && !paidAt.IsZero()
		})).Return(nil)

		_, err := svc.UpdateCommissionStatus(context.Background(), 5, model.CommissionStatusPaid)

		assert.NoError(t, err)
		txnRepo.AssertExpectations(t)
	})

	t.Run("reverting to pending clears the date", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		svc := NewTransactionService(txnRepo, new(MockEventRepository), nil)

		paid := &model.Transaction{ID: 5, CommissionStatus: model.CommissionStatusPaid}
		txnRepo.On("FindByID", mock.Anything, uint(5)).Return(paid, nil)
		txnRepo.On("UpdateCommissionStatus", mock.Anything, uint(5), model.CommissionStatusPending, (*time.Time)(nil)).Return(nil)

		_, err := svc.UpdateCommissionStatus(context.Background(), 5, model.CommissionStatusPending)

		assert.NoError(t, err)
		txnRepo.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewTransactionService(new(MockTransactionRepository), new(MockEventRepository), nil)

		_, err := svc.UpdateCommissionStatus(context.Background(), 5, model.CommissionStatus("settled"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidCommissionStatus)
	})

	t.Run("not found", func(t *testing.T) {
		txnRepo := new(MockTransactionRepository)
		svc := NewTransactionService(txnRepo, new(MockEventRepository), nil)

		txnRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.UpdateCommissionStatus(context.Background(), 99, model.CommissionStatusPaid)
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
	})
}

func TestTransactionService_Get(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	svc := NewTransactionService(txnRepo, new(MockEventRepository), nil)

	txn := &model.Transaction{ID: 7, ProofImagePath: "proofs/abc.png"}
	txnRepo.On("FindByID", mock.Anything, uint(7)).Return(txn, nil)

	got, err := svc.Get(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, txn, got)
}

func TestTransactionService_Get_NotFound(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	svc := NewTransactionService(txnRepo, new(MockEventRepository), nil)

	txnRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
}

// fakeTransactionStore keeps transactions in memory and applies the bulk
// mark-paid contract (event match, commission_amount > 0) so repeated calls
// can be observed end to end.
type fakeTransactionStore struct {
	MockTransactionRepository
	rows []model.Transaction
}

func (f *fakeTransactionStore) MarkEventCommissionsPaid(_ context.Context, eventID uint, paidAt time.Time) error {
	for i := range f.rows {
		if f.rows[i].EventID == eventID && f.rows[i].CommissionAmount.IsPositive() {
			f.rows[i].CommissionStatus = model.CommissionStatusPaid
			at := paidAt
			f.rows[i].CommissionPaidAt = &at
		}
	}
	return nil
}

func TestTransactionService_MarkEventCommissionsPaid_Idempotent(t *testing.T) {
	store := &fakeTransactionStore{rows: []model.Transaction{
		{ID: 1, EventID: 1, CommissionAmount: decimal.RequireFromString("50"), CommissionStatus: model.CommissionStatusPending},
		{ID: 2, EventID: 1, CommissionAmount: decimal.Zero, CommissionStatus: model.CommissionStatusPending},
		{ID: 3, EventID: 1, CommissionAmount: decimal.RequireFromString("30"), CommissionStatus: model.CommissionStatusPaid},
		{ID: 4, EventID: 2, CommissionAmount: decimal.RequireFromString("20"), CommissionStatus: model.CommissionStatusPending},
	}}
	eventRepo := new(MockEventRepository)
	eventRepo.On("FindByID", mock.Anything, uint(1)).Return(commissionedEvent(), nil)
	svc := NewTransactionService(store, eventRepo, nil)

	assert.NoError(t, svc.MarkEventCommissionsPaid(context.Background(), 1))
	assert.NoError(t, svc.MarkEventCommissionsPaid(context.Background(), 1))

	// Commissioned rows of the event are paid with a stamp.
	assert.Equal(t, model.CommissionStatusPaid, store.rows[0].CommissionStatus)
	assert.NotNil(t, store.rows[0].CommissionPaidAt)
	assert.Equal(t, model.CommissionStatusPaid, store.rows[2].CommissionStatus)

	// The zero-commission row is never touched, no matter how often it runs.
	assert.Equal(t, model.CommissionStatusPending, store.rows[1].CommissionStatus)
	assert.Nil(t, store.rows[1].CommissionPaidAt)

	// Other events are out of scope.
	assert.Equal(t, model.CommissionStatusPending, store.rows[3].CommissionStatus)
	assert.Nil(t, store.rows[3].CommissionPaidAt)

	// No row ever moves back to pending.
	for _, row := range store.rows[:3] {
		if row.CommissionAmount.IsPositive() {
			assert.Equal(t, model.CommissionStatusPaid, row.CommissionStatus)
		}
	}
}

func TestTransactionService_MarkEventCommissionsPaid(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	eventRepo := new(MockEventRepository)
	svc := NewTransactionService(txnRepo, eventRepo, nil)

	eventRepo.On("FindByID", mock.Anything, uint(1)).Return(commissionedEvent(), nil)
	txnRepo.On("MarkEventCommissionsPaid", mock.Anything, uint(1), mock.AnythingOfType("time.Time")).Return(nil)

	assert.NoError(t, svc.MarkEventCommissionsPaid(context.Background(), 1))
	txnRepo.AssertExpectations(t)
}

func TestTransactionService_MarkEventCommissionsPaid_EventNotFound(t *testing.T) {
	txnRepo := new(MockTransactionRepository)
	eventRepo := new(MockEventRepository)
	svc := NewTransactionService(txnRepo, eventRepo, nil)

	eventRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.MarkEventCommissionsPaid(context.Background(), 42)

	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	txnRepo.AssertNotCalled(t, "MarkEventCommissionsPaid", mock.Anything, mock.Anything, mock.Anything)
}
