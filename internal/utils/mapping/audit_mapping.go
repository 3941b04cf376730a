package mapping

import (
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/models"
)

// ToModelAuditEntry converts a domain AuditEntry to a model AuditEntry.
func ToModelAuditEntry(d domain.AuditEntry) models.AuditEntry {
	return models.AuditEntry{
		EntryID:      d.EntryID,
		Type:         models.AuditEntryType(d.Type),
		BookID:       d.BookID,
		LoanID:       d.LoanID,
		BorrowerName: d.BorrowerName,
		BorrowerID:   d.BorrowerID,
		Description:  d.Description,
		Actor:        d.Actor,
		OccurredAt:   d.OccurredAt,
	}
}

// ToDomainAuditEntry converts a model AuditEntry to a domain AuditEntry.
func ToDomainAuditEntry(m models.AuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:      m.EntryID,
		Type:         domain.AuditEntryType(m.Type),
		BookID:       m.BookID,
		LoanID:       m.LoanID,
		BorrowerName: m.BorrowerName,
		BorrowerID:   m.BorrowerID,
		Description:  m.Description,
		Actor:        m.Actor,
		OccurredAt:   m.OccurredAt,
	}
}

// ToDomainAuditEntrySlice converts a slice of model AuditEntries to domain ones.
func ToDomainAuditEntrySlice(ms []models.AuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditEntry(m)
	}
	return ds
}
