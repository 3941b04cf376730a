package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/core/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanRepository ---
type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) CountActiveLoansByBorrower(ctx context.Context, borrowerID string) (int, error) {
	args := m.Called(ctx, borrowerID)
	return args.Int(0), args.Error(1)
}

func (m *MockLoanRepository) ListLoans(ctx context.Context, filter portsrepo.LoanListFilter, limit int, nextToken *string) ([]domain.Loan, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Loan), token, args.Error(2)
}

func (m *MockLoanRepository) CheckoutLoan(ctx context.Context, loan domain.Loan, maxConcurrentLoans int, entry domain.AuditEntry) error {
	args := m.Called(ctx, loan, maxConcurrentLoans, entry)
	return args.Error(0)
}

func (m *MockLoanRepository) ReturnLoan(ctx context.Context, loan domain.Loan, fine *domain.Fine, entry domain.AuditEntry) error {
	args := m.Called(ctx, loan, fine, entry)
	return args.Error(0)
}

func (m *MockLoanRepository) RenewLoan(ctx context.Context, loan domain.Loan, entry domain.AuditEntry) error {
	args := m.Called(ctx, loan, entry)
	return args.Error(0)
}

// --- Mock BookReader ---
type MockBookReader struct {
	mock.Mock
}

func (m *MockBookReader) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookReader) FindBookByInventoryCode(ctx context.Context, inventoryCode string) (*domain.Book, error) {
	args := m.Called(ctx, inventoryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookReader) ListBooks(ctx context.Context, filter portsrepo.BookListFilter, limit int, nextToken *string) ([]domain.Book, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Book), token, args.Error(2)
}

// --- Mock FineReader ---
type MockFineReader struct {
	mock.Mock
}

func (m *MockFineReader) FindFineByID(ctx context.Context, fineID string) (*domain.Fine, error) {
	args := m.Called(ctx, fineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fine), args.Error(1)
}

func (m *MockFineReader) HasPendingFineForBorrower(ctx context.Context, borrowerID string) (bool, error) {
	args := m.Called(ctx, borrowerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFineReader) ListFines(ctx context.Context, filter portsrepo.FineListFilter, limit int, nextToken *string) ([]domain.Fine, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Fine), token, args.Error(2)
}

// --- Mock PolicyService ---
type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) GetPolicy(ctx context.Context) (*domain.PolicyConfiguration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyConfiguration), args.Error(1)
}

func (m *MockPolicyService) UpdatePolicy(ctx context.Context, req dto.UpdatePolicyRequest, actor string) (*domain.PolicyConfiguration, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PolicyConfiguration), args.Error(1)
}

// --- Test Suite ---
type LoanServiceTestSuite struct {
	suite.Suite
	mockLoanRepo  *MockLoanRepository
	mockBookRepo  *MockBookReader
	mockFineRepo  *MockFineReader
	mockPolicySvc *MockPolicyService
	service       portssvc.LoanSvcFacade
}

func (suite *LoanServiceTestSuite) SetupTest() {
	suite.mockLoanRepo = new(MockLoanRepository)
	suite.mockBookRepo = new(MockBookReader)
	suite.mockFineRepo = new(MockFineReader)
	suite.mockPolicySvc = new(MockPolicyService)
	suite.service = services.NewLoanService(suite.mockLoanRepo, suite.mockBookRepo, suite.mockFineRepo, suite.mockPolicySvc)
}

func defaultTestPolicy() *domain.PolicyConfiguration {
	policy := domain.DefaultPolicyConfiguration()
	return &policy
}

func availableTestBook() *domain.Book {
	return &domain.Book{
		BookID:        uuid.NewString(),
		InventoryCode: "INV-001",
		Title:         "The Go Programming Language",
		Author:        "Donovan & Kernighan",
		Category:      domain.CategoryTechnology,
		Available:     true,
	}
}

// --- Checkout ---

func (suite *LoanServiceTestSuite) TestCheckout_Success() {
	ctx := context.Background()
	book := availableTestBook()
	actor := "librarian-1"
	req := dto.CheckoutRequest{
		BookID:       book.BookID,
		BorrowerName: "Ana Torres",
		BorrowerID:   "S-100",
	}

	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockBookRepo.On("FindBookByID", ctx, book.BookID).Return(book, nil).Once()
	suite.mockLoanRepo.On("CountActiveLoansByBorrower", ctx, req.BorrowerID).Return(0, nil).Once()
	suite.mockLoanRepo.On("CheckoutLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		expectedDue := domain.DateOf(time.Now().UTC()).AddDate(0, 0, 15)
		return l.BookID == book.BookID &&
			l.Borrower.ID == req.BorrowerID &&
			l.Active &&
			l.State == domain.LoanStateActive &&
			l.RenewalCount == 0 &&
			l.IssuedBy == actor &&
			l.DueDate.Equal(expectedDue)
	}), 3, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Type == domain.AuditLoan && e.Actor == actor && *e.BookID == book.BookID
	})).Return(nil).Once()

	loan, err := suite.service.Checkout(ctx, req, actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(loan)
	suite.Equal(book.BookID, loan.BookID)
	suite.True(loan.Active)
	suite.Equal(domain.LoanStateActive, loan.State)
	suite.True(loan.FineAmount.IsZero())

	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockBookRepo.AssertExpectations(suite.T())
	suite.mockPolicySvc.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCheckout_BookUnavailable() {
	ctx := context.Background()
	book := availableTestBook()
	book.Available = false
	req := dto.CheckoutRequest{BookID: book.BookID, BorrowerName: "Ana Torres", BorrowerID: "S-100"}

	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockBookRepo.On("FindBookByID", ctx, book.BookID).Return(book, nil).Once()

	loan, err := suite.service.Checkout(ctx, req, "librarian-1")

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "CheckoutLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCheckout_BookNotFound() {
	ctx := context.Background()
	bookID := uuid.NewString()
	req := dto.CheckoutRequest{BookID: bookID, BorrowerName: "Ana Torres", BorrowerID: "S-100"}

	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockBookRepo.On("FindBookByID", ctx, bookID).Return(nil, apperrors.ErrNotFound).Once()

	loan, err := suite.service.Checkout(ctx, req, "librarian-1")

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LoanServiceTestSuite) TestCheckout_ConcurrentLoanLimitReached() {
	ctx := context.Background()
	book := availableTestBook()
	req := dto.CheckoutRequest{BookID: book.BookID, BorrowerName: "Ana Torres", BorrowerID: "S-100"}

	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockBookRepo.On("FindBookByID", ctx, book.BookID).Return(book, nil).Once()
	suite.mockLoanRepo.On("CountActiveLoansByBorrower", ctx, req.BorrowerID).Return(3, nil).Once()

	loan, err := suite.service.Checkout(ctx, req, "librarian-1")

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrLimitExceeded)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "CheckoutLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestCheckout_DueDateOverride() {
	ctx := context.Background()
	book := availableTestBook()
	override := time.Date(2026, 9, 30, 14, 30, 0, 0, time.UTC)
	req := dto.CheckoutRequest{
		BookID:       book.BookID,
		BorrowerName: "Ana Torres",
		BorrowerID:   "S-100",
		DueDate:      &override,
	}

	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockBookRepo.On("FindBookByID", ctx, book.BookID).Return(book, nil).Once()
	suite.mockLoanRepo.On("CountActiveLoansByBorrower", ctx, req.BorrowerID).Return(1, nil).Once()
	suite.mockLoanRepo.On("CheckoutLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.DueDate.Equal(domain.DateOf(override))
	}), 3, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	loan, err := suite.service.Checkout(ctx, req, "librarian-1")

	suite.Require().NoError(err)
	suite.Equal(domain.DateOf(override), loan.DueDate)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestCheckout_RepoReportsUnavailableUnderLock() {
	ctx := context.Background()
	book := availableTestBook()
	req := dto.CheckoutRequest{BookID: book.BookID, BorrowerName: "Ana Torres", BorrowerID: "S-100"}

	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockBookRepo.On("FindBookByID", ctx, book.BookID).Return(book, nil).Once()
	suite.mockLoanRepo.On("CountActiveLoansByBorrower", ctx, req.BorrowerID).Return(0, nil).Once()
	suite.mockLoanRepo.On("CheckoutLoan", ctx, mock.AnythingOfType("domain.Loan"), 3, mock.AnythingOfType("domain.AuditEntry")).
		Return(apperrors.ErrUnavailable).Once()

	loan, err := suite.service.Checkout(ctx, req, "librarian-1")

	suite.Require().Error(err)
	suite.Nil(loan)
	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

// --- Return ---

func activeTestLoan(dueDate time.Time) *domain.Loan {
	return &domain.Loan{
		LoanID: uuid.NewString(),
		BookID: uuid.NewString(),
		Borrower: domain.Borrower{
			Name: "Ana Torres",
			ID:   "S-100",
		},
		LoanDate:   dueDate.AddDate(0, 0, -15),
		DueDate:    domain.DateOf(dueDate),
		Active:     true,
		State:      domain.LoanStateActive,
		FineAmount: decimal.Zero,
		IssuedBy:   "librarian-1",
	}
}

func (suite *LoanServiceTestSuite) TestReturn_OnTime_NoFine() {
	ctx := context.Background()
	today := domain.DateOf(time.Now().UTC())
	loan := activeTestLoan(today.AddDate(0, 0, 5))
	actor := "librarian-2"

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockLoanRepo.On("ReturnLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return !l.Active && l.State == domain.LoanStateReturned && !l.HasFine && l.ReturnDate != nil
	}), (*domain.Fine)(nil), mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Type == domain.AuditReturn && e.Actor == actor
	})).Return(nil).Once()

	returned, err := suite.service.Return(ctx, loan.LoanID, dto.ReturnLoanRequest{}, actor)

	suite.Require().NoError(err)
	suite.False(returned.Active)
	suite.False(returned.HasFine)
	suite.True(returned.FineAmount.IsZero())
	suite.Equal(actor, *returned.ReceivedBy)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestReturn_FiveDaysLate_AssessesFine() {
	// Due day 15, returned day 20 at 5.00/day: fine of 25.00.
	ctx := context.Background()
	dueDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	loan := activeTestLoan(dueDate)
	actor := "librarian-2"

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockLoanRepo.On("ReturnLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return !l.Active && l.HasFine && l.FineAmount.Equal(decimal.RequireFromString("25"))
	}), mock.MatchedBy(func(f *domain.Fine) bool {
		return f != nil &&
			f.Type == domain.FineOverdue &&
			f.State == domain.FinePending &&
			f.Amount.Equal(decimal.RequireFromString("25")) &&
			f.BorrowerID == loan.Borrower.ID &&
			*f.LoanID == loan.LoanID
	}), mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	returned, err := suite.service.Return(ctx, loan.LoanID, dto.ReturnLoanRequest{ReturnDate: &returnDate}, actor)

	suite.Require().NoError(err)
	suite.True(returned.HasFine)
	suite.True(returned.FineAmount.Equal(decimal.RequireFromString("25")))
	suite.False(returned.FinePaid)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestReturn_LateWithinGrace_NoFine() {
	// Two days late with graceDays=2: no fine.
	ctx := context.Background()
	dueDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	loan := activeTestLoan(dueDate)

	policy := defaultTestPolicy()
	policy.GraceDays = 2

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPolicySvc.On("GetPolicy", ctx).Return(policy, nil).Once()
	suite.mockLoanRepo.On("ReturnLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return !l.HasFine && l.FineAmount.IsZero()
	}), (*domain.Fine)(nil), mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	returned, err := suite.service.Return(ctx, loan.LoanID, dto.ReturnLoanRequest{ReturnDate: &returnDate}, "librarian-2")

	suite.Require().NoError(err)
	suite.False(returned.HasFine)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestReturn_AlreadyReturned() {
	ctx := context.Background()
	loan := activeTestLoan(time.Now().UTC())
	loan.Active = false
	loan.State = domain.LoanStateReturned

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	returned, err := suite.service.Return(ctx, loan.LoanID, dto.ReturnLoanRequest{}, "librarian-2")

	suite.Require().Error(err)
	suite.Nil(returned)
	suite.ErrorIs(err, apperrors.ErrAlreadyReturned)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "ReturnLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestReturn_LoanNotFound() {
	ctx := context.Background()
	loanID := uuid.NewString()

	suite.mockLoanRepo.On("FindLoanByID", ctx, loanID).Return(nil, apperrors.ErrNotFound).Once()

	returned, err := suite.service.Return(ctx, loanID, dto.ReturnLoanRequest{}, "librarian-2")

	suite.Require().Error(err)
	suite.Nil(returned)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Renew ---

func (suite *LoanServiceTestSuite) TestRenew_Success_ExtendsFromToday() {
	ctx := context.Background()
	today := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	loan := activeTestLoan(today.AddDate(0, 0, 2))
	actor := "librarian-1"

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockFineRepo.On("HasPendingFineForBorrower", ctx, loan.Borrower.ID).Return(false, nil).Once()
	suite.mockLoanRepo.On("RenewLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		expectedDue := domain.DateOf(today).AddDate(0, 0, 15)
		return l.RenewalCount == 1 &&
			l.State == domain.LoanStateRenewed &&
			l.Active &&
			l.DueDate.Equal(expectedDue)
	}), mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Type == domain.AuditRenewal && e.Actor == actor
	})).Return(nil).Once()

	renewed, err := suite.service.Renew(ctx, loan.LoanID, actor, today)

	suite.Require().NoError(err)
	suite.Equal(1, renewed.RenewalCount)
	suite.Equal(domain.DateOf(today).AddDate(0, 0, 15), renewed.DueDate)
	suite.True(renewed.Active)
	suite.mockLoanRepo.AssertExpectations(suite.T())
	suite.mockFineRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestRenew_AtRenewalCeiling() {
	ctx := context.Background()
	loan := activeTestLoan(time.Now().UTC())
	loan.RenewalCount = 2

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()

	renewed, err := suite.service.Renew(ctx, loan.LoanID, "librarian-1", time.Now().UTC())

	suite.Require().Error(err)
	suite.Nil(renewed)
	suite.ErrorIs(err, apperrors.ErrLimitExceeded)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "RenewLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRenew_BlockedByPendingFine() {
	// A pending fine anywhere for the borrower blocks renewal, even when it is
	// tied to a different loan.
	ctx := context.Background()
	loan := activeTestLoan(time.Now().UTC())

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPolicySvc.On("GetPolicy", ctx).Return(defaultTestPolicy(), nil).Once()
	suite.mockFineRepo.On("HasPendingFineForBorrower", ctx, loan.Borrower.ID).Return(true, nil).Once()

	renewed, err := suite.service.Renew(ctx, loan.LoanID, "librarian-1", time.Now().UTC())

	suite.Require().Error(err)
	suite.Nil(renewed)
	suite.ErrorIs(err, apperrors.ErrOutstandingFine)
	suite.mockLoanRepo.AssertNotCalled(suite.T(), "RenewLoan", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LoanServiceTestSuite) TestRenew_InactiveLoan() {
	ctx := context.Background()
	loan := activeTestLoan(time.Now().UTC())
	loan.Active = false
	loan.State = domain.LoanStateReturned

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	renewed, err := suite.service.Renew(ctx, loan.LoanID, "librarian-1", time.Now().UTC())

	suite.Require().Error(err)
	suite.Nil(renewed)
	suite.ErrorIs(err, apperrors.ErrAlreadyReturned)
}

// --- Reads ---

func (suite *LoanServiceTestSuite) TestGetLoanByID_Success() {
	ctx := context.Background()
	loan := activeTestLoan(time.Now().UTC())

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()

	found, err := suite.service.GetLoanByID(ctx, loan.LoanID)

	suite.Require().NoError(err)
	suite.Equal(loan, found)
}

func (suite *LoanServiceTestSuite) TestReturn_LateBeyondGrace_FineOnBillableDaysOnly() {
	// Five days late with graceDays=2: only 3 days bill, 15.00 at 5.00/day.
	ctx := context.Background()
	dueDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	returnDate := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	loan := activeTestLoan(dueDate)

	policy := defaultTestPolicy()
	policy.GraceDays = 2

	suite.mockLoanRepo.On("FindLoanByID", ctx, loan.LoanID).Return(loan, nil).Once()
	suite.mockPolicySvc.On("GetPolicy", ctx).Return(policy, nil).Once()
	suite.mockLoanRepo.On("ReturnLoan", ctx, mock.MatchedBy(func(l domain.Loan) bool {
		return l.HasFine && l.FineAmount.Equal(decimal.RequireFromString("15"))
	}), mock.MatchedBy(func(f *domain.Fine) bool {
		return f != nil && f.Amount.Equal(decimal.RequireFromString("15"))
	}), mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	returned, err := suite.service.Return(ctx, loan.LoanID, dto.ReturnLoanRequest{ReturnDate: &returnDate}, "librarian-2")

	suite.Require().NoError(err)
	suite.True(returned.FineAmount.Equal(decimal.RequireFromString("15")))
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestListLoans_OverdueCutoffIsCalendarDay() {
	// A loan due today is not overdue until tomorrow, so the repository cutoff
	// must be today's midnight, not the wall-clock query time.
	ctx := context.Background()

	suite.mockLoanRepo.On("ListLoans", ctx, mock.MatchedBy(func(f portsrepo.LoanListFilter) bool {
		return f.OverdueOnly && f.AsOf.Equal(domain.DateOf(time.Now().UTC()))
	}), 0, (*string)(nil)).Return([]domain.Loan{}, nil, nil).Once()

	resp, err := suite.service.ListLoans(ctx, dto.ListLoansParams{OverdueOnly: true})

	suite.Require().NoError(err)
	suite.Empty(resp.Loans)
	suite.mockLoanRepo.AssertExpectations(suite.T())
}

func (suite *LoanServiceTestSuite) TestListLoans_PropagatesRepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockLoanRepo.On("ListLoans", ctx, mock.AnythingOfType("repositories.LoanListFilter"), 0, (*string)(nil)).
		Return(nil, nil, expectedErr).Once()

	resp, err := suite.service.ListLoans(ctx, dto.ListLoansParams{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, expectedErr)
}

func TestLoanServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}
