package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/core/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PolicyRepository ---
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) LoadPolicy(ctx context.Context) (*domain.PolicyConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyConfiguration), args.Error(1)
}

func (m *MockPolicyRepository) UpdatePolicy(ctx context.Context, policy domain.PolicyConfiguration) error {
	args := m.Called(ctx, policy)
	return args.Error(0)
}

// --- Test Suite ---
type PolicyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPolicyRepository
	service  portssvc.PolicySvcFacade
}

func (suite *PolicyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPolicyRepository)
	suite.service = services.NewPolicyService(suite.mockRepo)
}

func (suite *PolicyServiceTestSuite) TestGetPolicy_ReturnsSingleton() {
	ctx := context.Background()
	policy := domain.DefaultPolicyConfiguration()

	suite.mockRepo.On("LoadPolicy", ctx).Return(&policy, nil).Once()

	got, err := suite.service.GetPolicy(ctx)

	suite.Require().NoError(err)
	suite.Equal(15, got.LoanPeriodDays)
	suite.Equal(2, got.MaxRenewals)
	suite.Equal(3, got.MaxConcurrentLoans)
	suite.True(got.FinePerDay.Equal(decimal.NewFromInt(5)))
	suite.Equal(0, got.GraceDays)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestUpdatePolicy_PartialUpdate() {
	ctx := context.Background()
	policy := domain.DefaultPolicyConfiguration()
	newPeriod := 21
	newFine := decimal.RequireFromString("2.50")
	actor := "director"

	suite.mockRepo.On("LoadPolicy", ctx).Return(&policy, nil).Once()
	suite.mockRepo.On("UpdatePolicy", ctx, mock.MatchedBy(func(p domain.PolicyConfiguration) bool {
		return p.LoanPeriodDays == newPeriod &&
			p.FinePerDay.Equal(newFine) &&
			p.MaxRenewals == 2 &&
			p.LastUpdatedBy == actor
	})).Return(nil).Once()

	updated, err := suite.service.UpdatePolicy(ctx, dto.UpdatePolicyRequest{
		LoanPeriodDays: &newPeriod,
		FinePerDay:     &newFine,
	}, actor)

	suite.Require().NoError(err)
	suite.Equal(newPeriod, updated.LoanPeriodDays)
	suite.True(updated.FinePerDay.Equal(newFine))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PolicyServiceTestSuite) TestUpdatePolicy_NegativeFinePerDay() {
	ctx := context.Background()
	policy := domain.DefaultPolicyConfiguration()
	negative := decimal.RequireFromString("-0.01")

	suite.mockRepo.On("LoadPolicy", ctx).Return(&policy, nil).Once()

	updated, err := suite.service.UpdatePolicy(ctx, dto.UpdatePolicyRequest{FinePerDay: &negative}, "director")

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePolicy", mock.Anything, mock.Anything)
}

func (suite *PolicyServiceTestSuite) TestUpdatePolicy_NoFields_NoWrite() {
	ctx := context.Background()
	policy := domain.DefaultPolicyConfiguration()

	suite.mockRepo.On("LoadPolicy", ctx).Return(&policy, nil).Once()

	updated, err := suite.service.UpdatePolicy(ctx, dto.UpdatePolicyRequest{}, "director")

	suite.Require().NoError(err)
	suite.Equal(15, updated.LoanPeriodDays)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePolicy", mock.Anything, mock.Anything)
}

func TestPolicyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PolicyServiceTestSuite))
}
