package fines

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysLate(t *testing.T) {
	tests := []struct {
		name       string
		dueDate    time.Time
		returnDate time.Time
		expected   int
	}{
		{"on time", day(2026, 8, 15), day(2026, 8, 15), 0},
		{"early", day(2026, 8, 15), day(2026, 8, 10), 0},
		{"one day late", day(2026, 8, 15), day(2026, 8, 16), 1},
		{"five days late", day(2026, 8, 15), day(2026, 8, 20), 5},
		{"late across month boundary", day(2026, 8, 30), day(2026, 9, 2), 3},
		{"time of day ignored", time.Date(2026, 8, 15, 23, 59, 0, 0, time.UTC), time.Date(2026, 8, 16, 0, 1, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysLate(tt.dueDate, tt.returnDate))
		})
	}
}

func TestBillableDays(t *testing.T) {
	tests := []struct {
		name      string
		daysLate  int
		graceDays int
		expected  int
	}{
		{"no lateness", 0, 0, 0},
		{"no grace", 5, 0, 5},
		{"within grace", 2, 2, 0},
		{"beyond grace", 5, 2, 3},
		{"exactly at grace", 3, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BillableDays(tt.daysLate, tt.graceDays))
		})
	}
}

func TestOverdueAmount(t *testing.T) {
	rate := decimal.NewFromInt(5)

	tests := []struct {
		name       string
		dueDate    time.Time
		returnDate time.Time
		graceDays  int
		expected   string
	}{
		{"on time", day(2026, 8, 15), day(2026, 8, 15), 0, "0"},
		{"five days late at 5 per day", day(2026, 8, 15), day(2026, 8, 20), 0, "25"},
		{"grace absorbs lateness", day(2026, 8, 15), day(2026, 8, 17), 2, "0"},
		{"grace partially absorbs", day(2026, 8, 15), day(2026, 8, 20), 2, "15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverdueAmount(tt.dueDate, tt.returnDate, tt.graceDays, rate)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestOverdueAmount_FractionalRate(t *testing.T) {
	rate := decimal.RequireFromString("2.50")
	got := OverdueAmount(day(2026, 8, 15), day(2026, 8, 18), 0, rate)
	assert.True(t, got.Equal(decimal.RequireFromString("7.50")), "got %s", got)
}
