package models

import "time"

// AuditEntryType classifies a circulation event.
type AuditEntryType string

// AuditEntry is the persistence model for one immutable trail row. Book and
// loan references are weak (nullable, no FK ownership).
type AuditEntry struct {
	EntryID      string         `json:"entryID"`
	Type         AuditEntryType `json:"type"`
	BookID       *string        `json:"bookID,omitempty"`
	LoanID       *string        `json:"loanID,omitempty"`
	BorrowerName *string        `json:"borrowerName,omitempty"`
	BorrowerID   *string        `json:"borrowerID,omitempty"`
	Description  string         `json:"description"`
	Actor        string         `json:"actor"`
	OccurredAt   time.Time      `json:"occurredAt"`
}
