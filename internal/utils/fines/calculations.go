package fines

import (
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DaysLate returns the number of calendar days the return date falls after the
// due date. Returning on or before the due date yields zero.
func DaysLate(dueDate, returnDate time.Time) int {
	due := domain.DateOf(dueDate)
	returned := domain.DateOf(returnDate)
	if !returned.After(due) {
		return 0
	}
	return int(returned.Sub(due).Hours() / 24)
}

// BillableDays returns the late days that actually accrue a fine, i.e. days
// late beyond the grace period.
func BillableDays(daysLate, graceDays int) int {
	if daysLate <= graceDays {
		return 0
	}
	return daysLate - graceDays
}

// OverdueAmount computes the fine for a late return: billable days times the
// per-day rate. Decimal arithmetic throughout, no float rounding drift.
func OverdueAmount(dueDate, returnDate time.Time, graceDays int, finePerDay decimal.Decimal) decimal.Decimal {
	billable := BillableDays(DaysLate(dueDate, returnDate), graceDays)
	if billable == 0 {
		return decimal.Zero
	}
	return finePerDay.Mul(decimal.NewFromInt(int64(billable)))
}
