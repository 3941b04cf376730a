package domain

import "time"

// AuditEntryType classifies a circulation event.
type AuditEntryType string

const (
	AuditLoan        AuditEntryType = "LOAN"
	AuditReturn      AuditEntryType = "RETURN"
	AuditRenewal     AuditEntryType = "RENEWAL"
	AuditFine        AuditEntryType = "FINE"
	AuditBookAdded   AuditEntryType = "BOOK_ADDED"
	AuditBookRemoved AuditEntryType = "BOOK_REMOVED"
)

// AuditEntry is one immutable row of the circulation trail. BookID and LoanID
// are weak references kept for lookup convenience only; the Description owns a
// full human-readable copy so the entry outlives deletion of its referents.
type AuditEntry struct {
	EntryID      string         `json:"entryID"` // Primary Key (UUID)
	Type         AuditEntryType `json:"type"`
	BookID       *string        `json:"bookID,omitempty"`
	LoanID       *string        `json:"loanID,omitempty"`
	BorrowerName *string        `json:"borrowerName,omitempty"`
	BorrowerID   *string        `json:"borrowerID,omitempty"`
	Description  string         `json:"description"`
	Actor        string         `json:"actor"`
	OccurredAt   time.Time      `json:"occurredAt"`
}
