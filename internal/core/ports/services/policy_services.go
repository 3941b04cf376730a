package services

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/dto"
)

// PolicySvcFacade manages the singleton circulation policy.
type PolicySvcFacade interface {
	// GetPolicy returns the singleton, creating it with defaults when absent.
	GetPolicy(ctx context.Context) (*domain.PolicyConfiguration, error)

	// UpdatePolicy applies changes to the singleton's values.
	UpdatePolicy(ctx context.Context, req dto.UpdatePolicyRequest, actor string) (*domain.PolicyConfiguration, error)
}
