package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PolicyConfigID is the fixed key of the singleton policy row. Every load and
// update targets this key, so a second instance can never be created.
const PolicyConfigID = 1

// PolicyConfiguration is the single system-wide circulation policy record.
type PolicyConfiguration struct {
	ConfigID           int             `json:"configID"` // always PolicyConfigID
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

// DefaultPolicyConfiguration returns the documented defaults used when the
// singleton row does not exist yet.
func DefaultPolicyConfiguration() PolicyConfiguration {
	return PolicyConfiguration{
		ConfigID:           PolicyConfigID,
		LoanPeriodDays:     15,
		MaxRenewals:        2,
		MaxConcurrentLoans: 3,
		FinePerDay:         decimal.NewFromInt(5),
		GraceDays:          0,
		LibraryName:        "School Library",
	}
}
