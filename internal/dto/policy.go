package dto

import (
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdatePolicyRequest defines changes to the singleton circulation policy.
// Pointers distinguish zero-value updates from fields not provided.
type UpdatePolicyRequest struct {
	LoanPeriodDays     *int             `json:"loanPeriodDays" binding:"omitempty,min=1"`
	MaxRenewals        *int             `json:"maxRenewals" binding:"omitempty,min=0"`
	MaxConcurrentLoans *int             `json:"maxConcurrentLoans" binding:"omitempty,min=1"`
	FinePerDay         *decimal.Decimal `json:"finePerDay"`
	GraceDays          *int             `json:"graceDays" binding:"omitempty,min=0"`
	LibraryName        *string          `json:"libraryName"`
	Address            *string          `json:"address"`
	Phone              *string          `json:"phone"`
	Email              *string          `json:"email"`
	OpeningHours       *string          `json:"openingHours"`
}

// PolicyResponse defines the data returned for the policy singleton.
type PolicyResponse struct {
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

// ToPolicyResponse converts the domain policy singleton to its response DTO.
func ToPolicyResponse(p *domain.PolicyConfiguration) PolicyResponse {
	return PolicyResponse{
		LoanPeriodDays:     p.LoanPeriodDays,
		MaxRenewals:        p.MaxRenewals,
		MaxConcurrentLoans: p.MaxConcurrentLoans,
		FinePerDay:         p.FinePerDay,
		GraceDays:          p.GraceDays,
		LibraryName:        p.LibraryName,
		Address:            p.Address,
		Phone:              p.Phone,
		Email:              p.Email,
		OpeningHours:       p.OpeningHours,
		LastUpdatedAt:      p.LastUpdatedAt,
		LastUpdatedBy:      p.LastUpdatedBy,
	}
}
