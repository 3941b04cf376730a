package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/SscSPs/library_circulation_app/internal/middleware"
)

// policyService manages the singleton circulation policy. The repository
// enforces the singleton via its fixed key, so concurrent loads cannot create
// duplicates and there is no delete operation at all.
type policyService struct {
	policyRepo portsrepo.PolicyRepositoryFacade
}

// NewPolicyService creates a new PolicyService.
func NewPolicyService(policyRepo portsrepo.PolicyRepositoryFacade) portssvc.PolicySvcFacade {
	return &policyService{policyRepo: policyRepo}
}

// Ensure policyService implements the portssvc.PolicySvcFacade interface
var _ portssvc.PolicySvcFacade = (*policyService)(nil)

// GetPolicy returns the singleton, creating it with defaults when absent.
// Implements portssvc.PolicySvcFacade
func (s *policyService) GetPolicy(ctx context.Context) (*domain.PolicyConfiguration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	policy, err := s.policyRepo.LoadPolicy(ctx)
	if err != nil {
		logger.Error("Failed to load policy configuration", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load policy configuration: %w", err)
	}
	return policy, nil
}

// UpdatePolicy applies changes to the singleton's values.
// Implements portssvc.PolicySvcFacade
func (s *policyService) UpdatePolicy(ctx context.Context, req dto.UpdatePolicyRequest, actor string) (*domain.PolicyConfiguration, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	policy, err := s.policyRepo.LoadPolicy(ctx)
	if err != nil {
		logger.Error("Failed to load policy configuration for update", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load policy configuration: %w", err)
	}

	if req.FinePerDay != nil && req.FinePerDay.IsNegative() {
		return nil, fmt.Errorf("%w: finePerDay must not be negative", apperrors.ErrValidation)
	}

	updated := false
	if req.LoanPeriodDays != nil {
		policy.LoanPeriodDays = *req.LoanPeriodDays
		updated = true
	}
	if req.MaxRenewals != nil {
		policy.MaxRenewals = *req.MaxRenewals
		updated = true
	}
	if req.MaxConcurrentLoans != nil {
		policy.MaxConcurrentLoans = *req.MaxConcurrentLoans
		updated = true
	}
	if req.FinePerDay != nil {
		policy.FinePerDay = *req.FinePerDay
		updated = true
	}
	if req.GraceDays != nil {
		policy.GraceDays = *req.GraceDays
		updated = true
	}
	if req.LibraryName != nil {
		policy.LibraryName = *req.LibraryName
		updated = true
	}
	if req.Address != nil {
		policy.Address = *req.Address
		updated = true
	}
	if req.Phone != nil {
		policy.Phone = *req.Phone
		updated = true
	}
	if req.Email != nil {
		policy.Email = *req.Email
		updated = true
	}
	if req.OpeningHours != nil {
		policy.OpeningHours = *req.OpeningHours
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for policy update")
		return policy, nil
	}

	policy.LastUpdatedAt = time.Now().UTC()
	policy.LastUpdatedBy = actor

	if err := s.policyRepo.UpdatePolicy(ctx, *policy); err != nil {
		logger.Error("Failed to save policy update", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save policy update: %w", err)
	}

	logger.Info("Policy configuration updated successfully", slog.String("actor", actor))
	return policy, nil
}
