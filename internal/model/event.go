package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a named occasion tickets are bought and sold against.
// Admin events are commission-exempt regardless of the configured rate.
type Event struct {
	ID                  uint            `json:"id" gorm:"primaryKey"`
	Name                string          `json:"name" gorm:"size:255;not null;index"`
	Date                time.Time       `json:"date" gorm:"not null;index"`
	Location            string          `json:"location" gorm:"size:255"`
	Description         string          `json:"description" gorm:"type:text"`
	CommissionPerTicket decimal.Decimal `json:"commission_per_ticket" gorm:"type:decimal(20,2);not null;default:0"`
	IsAdminEvent        bool            `json:"is_admin_event" gorm:"default:false"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`

	// Relations
	Transactions []Transaction `json:"transactions,omitempty" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

// EventSummary is the redacted projection returned to bookers.
// Commission rate and the admin-event flag are withheld.
type EventSummary struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
}

// Summary projects an event down to its booker-visible fields.
func (e Event) Summary() EventSummary {
	return EventSummary{
		ID:       e.ID,
		Name:     e.Name,
		Date:     e.Date,
		Location: e.Location,
	}
}
