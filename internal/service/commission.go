package service

import "github.com/shopspring/decimal"

// CommissionBreakdown holds the derived amounts for one transaction.
// Net always equals Total minus Commission.
type CommissionBreakdown struct {
	Total      decimal.Decimal
	Commission decimal.Decimal
	Net        decimal.Decimal
}

// ComputeCommission derives the amounts for a transaction. Commission is zero
// when the creator opted out, the event is admin-run, or the event has no
// positive per-ticket rate; otherwise it is numTickets times the rate.
// Commission may legitimately exceed the total when the rate is higher than
// the ticket price. Inputs are assumed validated: numTickets >= 1, price and
// rate non-negative.
func ComputeCommission(rate decimal.Decimal, isAdminEvent, noCommission bool, numTickets int, pricePerTicket decimal.Decimal) CommissionBreakdown {
	tickets := decimal.NewFromInt(int64(numTickets))
	total := tickets.Mul(pricePerTicket)

	commission := decimal.Zero
	if !noCommission && !isAdminEvent && rate.IsPositive() {
		commission = tickets.Mul(rate)
	}

	return CommissionBreakdown{
		Total:      total,
		Commission: commission,
		Net:        total.Sub(commission),
	}
}
