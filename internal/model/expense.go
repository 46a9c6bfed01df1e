package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategory is the fixed set of cost buckets for expenses.
type ExpenseCategory string

const (
	ExpenseCategoryTransportation ExpenseCategory = "Transportation"
	ExpenseCategoryFoodBeverages  ExpenseCategory = "Food & Beverages"
	ExpenseCategoryMarketing      ExpenseCategory = "Marketing"
	ExpenseCategoryVenue          ExpenseCategory = "Venue"
	ExpenseCategoryStaff          ExpenseCategory = "Staff"
	ExpenseCategoryEquipment      ExpenseCategory = "Equipment"
	ExpenseCategoryPrinting       ExpenseCategory = "Printing"
	ExpenseCategoryMiscellaneous  ExpenseCategory = "Miscellaneous"
	ExpenseCategoryOther          ExpenseCategory = "Other"
)

// ExpenseCategories lists all accepted categories, in the order shown to users.
var ExpenseCategories = []ExpenseCategory{
	ExpenseCategoryTransportation,
	ExpenseCategoryFoodBeverages,
	ExpenseCategoryMarketing,
	ExpenseCategoryVenue,
	ExpenseCategoryStaff,
	ExpenseCategoryEquipment,
	ExpenseCategoryPrinting,
	ExpenseCategoryMiscellaneous,
	ExpenseCategoryOther,
}

// Valid reports whether the category is one of the accepted categories.
func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a cost entry, optionally linked to an event. The link is
// nullified, not cascaded, when the event is deleted.
type Expense struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	EventID     *uint           `json:"event_id,omitempty" gorm:"index"`
	Category    ExpenseCategory `json:"expense_category" gorm:"type:varchar(50);not null"`
	Description string          `json:"description" gorm:"size:255;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Date        time.Time       `json:"expense_date" gorm:"not null;index"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relations
	Event *Event `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:SET NULL"`
}

// ExpenseWithEvent is an expense row joined with its event's name, when linked.
type ExpenseWithEvent struct {
	Expense
	EventName string `json:"event_name,omitempty"`
}
