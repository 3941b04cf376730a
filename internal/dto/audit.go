package dto

import (
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
)

// ListAuditEntriesParams holds the query parameters for the audit trail.
type ListAuditEntriesParams struct {
	Type      *string `form:"type"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// AuditEntryResponse defines the data returned for one audit trail row.
type AuditEntryResponse struct {
	EntryID      string                `json:"entryID"`
	Type         domain.AuditEntryType `json:"type"`
	BookID       *string               `json:"bookID,omitempty"`
	LoanID       *string               `json:"loanID,omitempty"`
	BorrowerName *string               `json:"borrowerName,omitempty"`
	BorrowerID   *string               `json:"borrowerID,omitempty"`
	Description  string                `json:"description"`
	Actor        string                `json:"actor"`
	OccurredAt   time.Time             `json:"occurredAt"`
}

// ListAuditEntriesResponse wraps a page of audit entries plus the cursor.
type ListAuditEntriesResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToAuditEntryResponse converts a domain.AuditEntry to its response DTO.
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntryID:      e.EntryID,
		Type:         e.Type,
		BookID:       e.BookID,
		LoanID:       e.LoanID,
		BorrowerName: e.BorrowerName,
		BorrowerID:   e.BorrowerID,
		Description:  e.Description,
		Actor:        e.Actor,
		OccurredAt:   e.OccurredAt,
	}
}

// ToAuditEntryResponses converts a slice of domain audit entries to DTOs.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	resp := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		resp[i] = ToAuditEntryResponse(&entries[i])
	}
	return resp
}
