package repositories

import (
	"context"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
)

// PolicyRepositoryFacade manages the singleton policy configuration row.
// There is deliberately no delete operation.
type PolicyRepositoryFacade interface {
	// LoadPolicy returns the singleton, creating it with defaults when absent.
	// Creation races collapse onto the existing row via the fixed singleton key.
	LoadPolicy(ctx context.Context) (*domain.PolicyConfiguration, error)

	// UpdatePolicy replaces the singleton's values in place.
	UpdatePolicy(ctx context.Context, policy domain.PolicyConfiguration) error
}
