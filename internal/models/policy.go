package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicyConfiguration is the persistence model of the singleton policy row.
type PolicyConfiguration struct {
	ConfigID           int             `json:"configID"`
	LoanPeriodDays     int             `json:"loanPeriodDays"`
	MaxRenewals        int             `json:"maxRenewals"`
	MaxConcurrentLoans int             `json:"maxConcurrentLoans"`
	FinePerDay         decimal.Decimal `json:"finePerDay"`
	GraceDays          int             `json:"graceDays"`
	LibraryName        string          `json:"libraryName"`
	Address            string          `json:"address"`
	Phone              string          `json:"phone"`
	Email              string          `json:"email"`
	OpeningHours       string          `json:"openingHours"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}
