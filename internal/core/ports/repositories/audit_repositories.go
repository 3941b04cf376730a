package repositories

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
)

// AuditRepositoryFacade is the read-only surface of the audit trail. Writes
// happen exclusively inside the lifecycle transactions of the other
// repositories; no update or delete operation exists anywhere.
type AuditRepositoryFacade interface {
	// ListRecentEntries retrieves audit entries newest first, optionally
	// filtered by type, token paginated.
	ListRecentEntries(ctx context.Context, entryType *domain.AuditEntryType, limit int, nextToken *string) ([]domain.AuditEntry, *string, error)
}
