package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes ticket purchases from sales.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeSale     TransactionType = "sale"
)

// Valid reports whether the type is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypePurchase || t == TransactionTypeSale
}

// CommissionStatus represents the payment state of a transaction's commission.
type CommissionStatus string

const (
	CommissionStatusPending CommissionStatus = "pending"
	CommissionStatusPaid    CommissionStatus = "paid"
)

// Valid reports whether the status is a known commission status.
func (s CommissionStatus) Valid() bool {
	return s == CommissionStatusPending || s == CommissionStatusPaid
}

// Transaction records one ticket purchase or sale against an event.
// TotalAmount, CommissionAmount and NetAmount are derived at creation time
// and never independently settable; net_amount = total_amount - commission_amount.
type Transaction struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	EventID          uint             `json:"event_id" gorm:"not null;index"`
	Type             TransactionType  `json:"transaction_type" gorm:"type:varchar(20);not null;index"`
	NumTickets       int              `json:"num_tickets" gorm:"not null"`
	PricePerTicket   decimal.Decimal  `json:"price_per_ticket" gorm:"type:decimal(20,2);not null"`
	TotalAmount      decimal.Decimal  `json:"total_amount" gorm:"type:decimal(20,2);not null"`
	PartyName        string           `json:"party_name" gorm:"size:255;not null"`
	PartyMobile      string           `json:"party_mobile" gorm:"size:20"`
	UPIID            string           `json:"upi_id" gorm:"column:upi_id;size:100"`
	PaymentReference string           `json:"payment_reference" gorm:"size:100"`
	ProofImagePath   string           `json:"proof_image_path,omitempty" gorm:"size:255"`
	CommissionAmount decimal.Decimal  `json:"commission_amount" gorm:"type:decimal(20,2);not null;default:0"`
	NetAmount        decimal.Decimal  `json:"net_amount" gorm:"type:decimal(20,2);not null"`
	CommissionStatus CommissionStatus `json:"commission_payment_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CommissionPaidAt *time.Time       `json:"commission_paid_date,omitempty"`
	Date             time.Time        `json:"transaction_date" gorm:"not null;index"`
	Notes            string           `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time        `json:"created_at"`

	// Relations
	Event Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// TransactionWithEvent is a transaction row joined with its event's name,
// as served by the admin transaction list and the booker earnings view.
type TransactionWithEvent struct {
	Transaction
	EventName string `json:"event_name"`
}
