package mapping

import (
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/models"
)

// ToModelFine converts a domain Fine to a model Fine.
func ToModelFine(d domain.Fine) models.Fine {
	return models.Fine{
		FineID:       d.FineID,
		LoanID:       d.LoanID,
		BookID:       d.BookID,
		BorrowerName: d.BorrowerName,
		BorrowerID:   d.BorrowerID,
		Type:         models.FineType(d.Type),
		Amount:       d.Amount,
		State:        models.FineState(d.State),
		Description:  d.Description,
		IssuedAt:     d.IssuedAt,
		DueDate:      d.DueDate,
		PaymentDate:  d.PaymentDate,
		Receipt:      d.Receipt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFine converts a model Fine to a domain Fine.
func ToDomainFine(m models.Fine) domain.Fine {
	return domain.Fine{
		FineID:       m.FineID,
		LoanID:       m.LoanID,
		BookID:       m.BookID,
		BorrowerName: m.BorrowerName,
		BorrowerID:   m.BorrowerID,
		Type:         domain.FineType(m.Type),
		Amount:       m.Amount,
		State:        domain.FineState(m.State),
		Description:  m.Description,
		IssuedAt:     m.IssuedAt,
		DueDate:      m.DueDate,
		PaymentDate:  m.PaymentDate,
		Receipt:      m.Receipt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainFineSlice converts a slice of model Fines to domain Fines.
func ToDomainFineSlice(ms []models.Fine) []domain.Fine {
	ds := make([]domain.Fine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFine(m)
	}
	return ds
}
