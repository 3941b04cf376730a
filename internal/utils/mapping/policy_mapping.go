package mapping

import (
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/models"
)

// ToModelPolicyConfiguration converts the domain policy singleton to its model.
func ToModelPolicyConfiguration(d domain.PolicyConfiguration) models.PolicyConfiguration {
	return models.PolicyConfiguration{
		ConfigID:           d.ConfigID,
		LoanPeriodDays:     d.LoanPeriodDays,
		MaxRenewals:        d.MaxRenewals,
		MaxConcurrentLoans: d.MaxConcurrentLoans,
		FinePerDay:         d.FinePerDay,
		GraceDays:          d.GraceDays,
		LibraryName:        d.LibraryName,
		Address:            d.Address,
		Phone:              d.Phone,
		Email:              d.Email,
		OpeningHours:       d.OpeningHours,
		LastUpdatedAt:      d.LastUpdatedAt,
		LastUpdatedBy:      d.LastUpdatedBy,
	}
}

// ToDomainPolicyConfiguration converts the model policy singleton to its domain form.
func ToDomainPolicyConfiguration(m models.PolicyConfiguration) domain.PolicyConfiguration {
	return domain.PolicyConfiguration{
		ConfigID:           m.ConfigID,
		LoanPeriodDays:     m.LoanPeriodDays,
		MaxRenewals:        m.MaxRenewals,
		MaxConcurrentLoans: m.MaxConcurrentLoans,
		FinePerDay:         m.FinePerDay,
		GraceDays:          m.GraceDays,
		LibraryName:        m.LibraryName,
		Address:            m.Address,
		Phone:              m.Phone,
		Email:              m.Email,
		OpeningHours:       m.OpeningHours,
		LastUpdatedAt:      m.LastUpdatedAt,
		LastUpdatedBy:      m.LastUpdatedBy,
	}
}
