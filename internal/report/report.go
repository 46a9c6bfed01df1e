// Package report computes the read-side views of the back office: dashboard
// statistics, profit/loss, commission reports and booker earnings. Everything
// here is a pure function over an in-memory snapshot so the arithmetic is
// unit-testable without a database.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/denialp88/tickets/internal/model"
)

// DashboardStats is the admin-facing global summary.
type DashboardStats struct {
	TotalEvents         int             `json:"totalEvents"`
	TotalTransactions   int             `json:"totalTransactions"`
	TotalPurchaseAmount decimal.Decimal `json:"totalPurchaseAmount"`
	TotalSaleAmount     decimal.Decimal `json:"totalSaleAmount"`
	TotalCommission     decimal.Decimal `json:"totalCommission"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
	GrossProfit         decimal.Decimal `json:"grossProfit"`
	NetProfit           decimal.Decimal `json:"netProfit"`
	PurchaseCount       int             `json:"purchaseCount"`
	SaleCount           int             `json:"saleCount"`
	ExpenseCount        int             `json:"expenseCount"`
}

// Dashboard aggregates the global figures. Gross profit is sales minus
// purchases; net profit additionally subtracts commissions and expenses.
func Dashboard(events []model.Event, txns []model.TransactionWithEvent, expenses []model.ExpenseWithEvent) DashboardStats {
	stats := DashboardStats{
		TotalEvents:         len(events),
		TotalTransactions:   len(txns),
		TotalPurchaseAmount: decimal.Zero,
		TotalSaleAmount:     decimal.Zero,
		TotalCommission:     decimal.Zero,
		TotalExpenses:       decimal.Zero,
		ExpenseCount:        len(expenses),
	}

	for _, t := range txns {
		switch t.Type {
		case model.TransactionTypePurchase:
			stats.TotalPurchaseAmount = stats.TotalPurchaseAmount.Add(t.TotalAmount)
			stats.PurchaseCount++
		case model.TransactionTypeSale:
			stats.TotalSaleAmount = stats.TotalSaleAmount.Add(t.TotalAmount)
			stats.SaleCount++
		}
		stats.TotalCommission = stats.TotalCommission.Add(t.CommissionAmount)
	}

	for _, e := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(e.Amount)
	}

	stats.GrossProfit = stats.TotalSaleAmount.Sub(stats.TotalPurchaseAmount)
	stats.NetProfit = stats.GrossProfit.Sub(stats.TotalCommission).Sub(stats.TotalExpenses)
	return stats
}

// EventProfit is the per-event slice of the profit/loss report. Expenses are
// not subtracted here; they may be general and only count in the global figure.
type EventProfit struct {
	EventID          uint            `json:"eventId"`
	EventName        string          `json:"eventName"`
	EventDate        time.Time       `json:"eventDate"`
	TotalPurchase    decimal.Decimal `json:"totalPurchase"`
	TotalSale        decimal.Decimal `json:"totalSale"`
	TotalCommission  decimal.Decimal `json:"totalCommission"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	PurchaseCount    int             `json:"purchaseCount"`
	SaleCount        int             `json:"saleCount"`
	TicketsPurchased int             `json:"ticketsPurchased"`
	TicketsSold      int             `json:"ticketsSold"`
}

// ProfitLossReport combines the per-event breakdown with the global summary.
type ProfitLossReport struct {
	Summary DashboardStats `json:"summary"`
	Events  []EventProfit  `json:"events"`
}

// ProfitLoss builds the profit/loss report. Events keep the order they are
// given in (date-descending from the store).
func ProfitLoss(events []model.Event, txns []model.TransactionWithEvent, expenses []model.ExpenseWithEvent) ProfitLossReport {
	byEvent := make(map[uint][]model.TransactionWithEvent, len(events))
	for _, t := range txns {
		byEvent[t.EventID] = append(byEvent[t.EventID], t)
	}

	rows := make([]EventProfit, 0, len(events))
	for _, ev := range events {
		row := EventProfit{
			EventID:         ev.ID,
			EventName:       ev.Name,
			EventDate:       ev.Date,
			TotalPurchase:   decimal.Zero,
			TotalSale:       decimal.Zero,
			TotalCommission: decimal.Zero,
		}
		for _, t := range byEvent[ev.ID] {
			switch t.Type {
			case model.TransactionTypePurchase:
				row.TotalPurchase = row.TotalPurchase.Add(t.TotalAmount)
				row.PurchaseCount++
				row.TicketsPurchased += t.NumTickets
			case model.TransactionTypeSale:
				row.TotalSale = row.TotalSale.Add(t.TotalAmount)
				row.SaleCount++
				row.TicketsSold += t.NumTickets
			}
			row.TotalCommission = row.TotalCommission.Add(t.CommissionAmount)
		}
		row.GrossProfit = row.TotalSale.Sub(row.TotalPurchase)
		row.NetProfit = row.GrossProfit.Sub(row.TotalCommission)
		rows = append(rows, row)
	}

	return ProfitLossReport{
		Summary: Dashboard(events, txns, expenses),
		Events:  rows,
	}
}

// CommissionSummary splits a commission total into pending and paid shares.
// Pending plus paid always equals the total.
type CommissionSummary struct {
	TotalCommission   decimal.Decimal `json:"totalCommission"`
	PendingCommission decimal.Decimal `json:"pendingCommission"`
	PaidCommission    decimal.Decimal `json:"paidCommission"`
}

func newCommissionSummary() CommissionSummary {
	return CommissionSummary{
		TotalCommission:   decimal.Zero,
		PendingCommission: decimal.Zero,
		PaidCommission:    decimal.Zero,
	}
}

func (s *CommissionSummary) add(t model.TransactionWithEvent) {
	s.TotalCommission = s.TotalCommission.Add(t.CommissionAmount)
	if t.CommissionStatus == model.CommissionStatusPending {
		s.PendingCommission = s.PendingCommission.Add(t.CommissionAmount)
	} else {
		s.PaidCommission = s.PaidCommission.Add(t.CommissionAmount)
	}
}

// EventCommission is one row of the admin commission report.
type EventCommission struct {
	EventID   uint      `json:"eventId"`
	EventName string    `json:"eventName"`
	EventDate time.Time `json:"eventDate"`
	CommissionSummary
	TransactionCount int `json:"transactionCount"`
}

// CommissionReport is the admin commission view: a global summary plus a
// per-event breakdown excluding events with no commission at all.
type CommissionReport struct {
	Summary     CommissionSummary `json:"summary"`
	EventReport []EventCommission `json:"eventReport"`
}

// Commission builds the admin commission report. Events keep their given
// (date-descending) order.
func Commission(events []model.Event, txns []model.TransactionWithEvent) CommissionReport {
	summary := newCommissionSummary()
	byEvent := make(map[uint][]model.TransactionWithEvent, len(events))
	for _, t := range txns {
		summary.add(t)
		byEvent[t.EventID] = append(byEvent[t.EventID], t)
	}

	rows := make([]EventCommission, 0, len(events))
	for _, ev := range events {
		row := EventCommission{
			EventID:           ev.ID,
			EventName:         ev.Name,
			EventDate:         ev.Date,
			CommissionSummary: newCommissionSummary(),
		}
		for _, t := range byEvent[ev.ID] {
			row.add(t)
			row.TransactionCount++
		}
		if row.TotalCommission.IsPositive() {
			rows = append(rows, row)
		}
	}

	return CommissionReport{Summary: summary, EventReport: rows}
}

// EventEarnings is a booker's per-event earnings breakdown entry. Grouping is
// by event name, matching what the booker sees on screen; two events sharing
// a name merge into one row.
type EventEarnings struct {
	EventName         string          `json:"eventName"`
	Commission        decimal.Decimal `json:"commission"`
	PendingCommission decimal.Decimal `json:"pendingCommission"`
	PaidCommission    decimal.Decimal `json:"paidCommission"`
	Transactions      int             `json:"transactions"`
	Tickets           int             `json:"tickets"`
}

// BookerEarnings is the booker-facing earnings view. It spans the full
// transaction set; transactions carry no owning booker.
type BookerEarnings struct {
	TotalCommission   decimal.Decimal `json:"totalCommission"`
	PendingCommission decimal.Decimal `json:"pendingCommission"`
	PaidCommission    decimal.Decimal `json:"paidCommission"`
	TotalTransactions int             `json:"totalTransactions"`
	EventEarnings     []EventEarnings `json:"eventEarnings"`
}

// Earnings builds the booker earnings view. The per-event listing keeps
// first-seen order over the date-descending input.
func Earnings(txns []model.TransactionWithEvent) BookerEarnings {
	out := BookerEarnings{
		TotalCommission:   decimal.Zero,
		PendingCommission: decimal.Zero,
		PaidCommission:    decimal.Zero,
		TotalTransactions: len(txns),
		EventEarnings:     []EventEarnings{},
	}

	index := make(map[string]int)
	for _, t := range txns {
		out.TotalCommission = out.TotalCommission.Add(t.CommissionAmount)

		i, seen := index[t.EventName]
		if !seen {
			i = len(out.EventEarnings)
			index[t.EventName] = i
			out.EventEarnings = append(out.EventEarnings, EventEarnings{
				EventName:         t.EventName,
				Commission:        decimal.Zero,
				PendingCommission: decimal.Zero,
				PaidCommission:    decimal.Zero,
			})
		}
		row := &out.EventEarnings[i]
		row.Commission = row.Commission.Add(t.CommissionAmount)
		row.Transactions++
		row.Tickets += t.NumTickets

		if t.CommissionStatus == model.CommissionStatusPending {
			out.PendingCommission = out.PendingCommission.Add(t.CommissionAmount)
			row.PendingCommission = row.PendingCommission.Add(t.CommissionAmount)
		} else {
			out.PaidCommission = out.PaidCommission.Add(t.CommissionAmount)
			row.PaidCommission = row.PaidCommission.Add(t.CommissionAmount)
		}
	}

	return out
}
