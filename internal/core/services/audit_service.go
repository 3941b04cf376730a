package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
)

// auditService exposes the read side of the circulation trail. Entries are
// written only inside the lifecycle transactions; nothing updates or deletes them.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

// Ensure auditService implements the portssvc.AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// ListRecentEntries retrieves audit entries newest first.
// Implements portssvc.AuditSvcFacade
func (s *auditService) ListRecentEntries(ctx context.Context, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var entryType *domain.AuditEntryType
	if params.Type != nil {
		t := domain.AuditEntryType(*params.Type)
		entryType = &t
	}

	entries, nextToken, err := s.auditRepo.ListRecentEntries(ctx, entryType, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list audit entries from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve audit entries: %w", err)
	}

	resp := &dto.ListAuditEntriesResponse{
		Entries:   dto.ToAuditEntryResponses(entries),
		NextToken: nextToken,
	}

	logger.Debug("Audit entries listed successfully", slog.Int("count", len(entries)))
	return resp, nil
}
