package services

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/dto"
)

// AuditSvcFacade is the read-only service surface of the audit trail.
type AuditSvcFacade interface {
	// ListRecentEntries retrieves audit entries newest first.
	ListRecentEntries(ctx context.Context, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error)
}
