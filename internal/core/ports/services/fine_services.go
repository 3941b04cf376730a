package services

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/dto"
)

// FineReaderSvc defines read operations for fine data
type FineReaderSvc interface {
	// GetFineByID retrieves a specific fine by its ID.
	GetFineByID(ctx context.Context, fineID string) (*domain.Fine, error)

	// ListFines retrieves a filtered, paginated list of fines.
	ListFines(ctx context.Context, params dto.ListFinesParams) (*dto.ListFinesResponse, error)
}

// FineWriterSvc defines write operations for fine data
type FineWriterSvc interface {
	// CreateManualFine records a fine directly, without going through a return.
	CreateManualFine(ctx context.Context, req dto.CreateFineRequest, actor string) (*domain.Fine, error)

	// PayFine settles a pending fine and stamps the receipt reference.
	PayFine(ctx context.Context, fineID string, req dto.PayFineRequest, actor string) (*domain.Fine, error)

	// CondoneFine waives a pending fine. Terminal; no reversal exists.
	CondoneFine(ctx context.Context, fineID string, actor string) (*domain.Fine, error)
}

// FineSvcFacade combines all fine-related service interfaces
type FineSvcFacade interface {
	FineReaderSvc
	FineWriterSvc
}
