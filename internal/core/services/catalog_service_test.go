package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
	"github.com/SscSPs/library_circulation_app/internal/core/services"
	"github.com/SscSPs/library_circulation_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BookRepository ---
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) FindBookByInventoryCode(ctx context.Context, inventoryCode string) (*domain.Book, error) {
	args := m.Called(ctx, inventoryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *MockBookRepository) ListBooks(ctx context.Context, filter portsrepo.BookListFilter, limit int, nextToken *string) ([]domain.Book, *string, error) {
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

func (m *MockBookRepository) SaveBook(ctx context.Context, book domain.Book, entry domain.AuditEntry) error {
	args := m.Called(ctx, book, entry)
	return args.Error(0)
}

func (m *MockBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) DeleteBook(ctx context.Context, bookID string, entry domain.AuditEntry) error {
	args := m.Called(ctx, bookID, entry)
	return args.Error(0)
}

// --- Test Suite ---
type CatalogServiceTestSuite struct {
	suite.Suite
	mockRepo *MockBookRepository
	service  portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockBookRepository)
	suite.service = services.NewCatalogService(suite.mockRepo)
}

func validCreateBookRequest() dto.CreateBookRequest {
	return dto.CreateBookRequest{
		InventoryCode:   "INV-042",
		Title:           "Cien años de soledad",
		Author:          "Gabriel García Márquez",
		PublicationYear: 1967,
		Category:        domain.CategoryLiterature,
		ShelfLocation:   "A-3",
	}
}

func (suite *CatalogServiceTestSuite) TestAddBook_Success_AppliesDefaults() {
	ctx := context.Background()
	req := validCreateBookRequest()
	actor := "librarian-1"

	suite.mockRepo.On("FindBookByInventoryCode", ctx, req.InventoryCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBook", ctx, mock.MatchedBy(func(b domain.Book) bool {
		return b.InventoryCode == req.InventoryCode &&
			b.Available &&
			b.Language == "Spanish" &&
			b.Condition == domain.ConditionGood &&
			b.CreatedBy == actor
	}), mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Type == domain.AuditBookAdded && e.Actor == actor
	})).Return(nil).Once()

	book, err := suite.service.AddBook(ctx, req, actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(book)
	suite.NotEmpty(book.BookID)
	suite.True(book.Available)
	suite.Equal("Spanish", book.Language)
	suite.Equal(domain.ConditionGood, book.Condition)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestAddBook_ExplicitLanguageAndConditionKept() {
	ctx := context.Background()
	req := validCreateBookRequest()
	req.Language = "English"
	req.Condition = domain.ConditionFair

	suite.mockRepo.On("FindBookByInventoryCode", ctx, req.InventoryCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBook", ctx, mock.MatchedBy(func(b domain.Book) bool {
		return b.Language == "English" && b.Condition == domain.ConditionFair
	}), mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	book, err := suite.service.AddBook(ctx, req, "librarian-1")

	suite.Require().NoError(err)
	suite.Equal("English", book.Language)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestAddBook_DuplicateInventoryCode() {
	ctx := context.Background()
	req := validCreateBookRequest()
	existing := &domain.Book{BookID: uuid.NewString(), InventoryCode: req.InventoryCode}

	suite.mockRepo.On("FindBookByInventoryCode", ctx, req.InventoryCode).Return(existing, nil).Once()

	book, err := suite.service.AddBook(ctx, req, "librarian-1")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveBook", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestAddBook_DuplicateRaceCaughtBySave() {
	// The uniqueness pre-check can race a concurrent insert; the repository's
	// constraint violation still surfaces as ErrDuplicate.
	ctx := context.Background()
	req := validCreateBookRequest()

	suite.mockRepo.On("FindBookByInventoryCode", ctx, req.InventoryCode).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveBook", ctx, mock.AnythingOfType("domain.Book"), mock.AnythingOfType("domain.AuditEntry")).
		Return(apperrors.ErrDuplicate).Once()

	book, err := suite.service.AddBook(ctx, req, "librarian-1")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CatalogServiceTestSuite) TestUpdateBook_Success() {
	ctx := context.Background()
	existing := &domain.Book{
		BookID:        uuid.NewString(),
		InventoryCode: "INV-042",
		Title:         "Old Title",
		Author:        "Old Author",
		ShelfLocation: "A-3",
	}
	newTitle := "New Title"
	newShelf := "B-1"
	actor := "librarian-2"

	suite.mockRepo.On("FindBookByID", ctx, existing.BookID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateBook", ctx, mock.MatchedBy(func(b domain.Book) bool {
		return b.Title == newTitle &&
			b.ShelfLocation == newShelf &&
			b.Author == "Old Author" &&
			b.LastUpdatedBy == actor
	})).Return(nil).Once()

	book, err := suite.service.UpdateBook(ctx, existing.BookID, dto.UpdateBookRequest{Title: &newTitle, ShelfLocation: &newShelf}, actor)

	suite.Require().NoError(err)
	suite.Equal(newTitle, book.Title)
	suite.Equal(newShelf, book.ShelfLocation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestUpdateBook_NoFields_NoWrite() {
	ctx := context.Background()
	existing := &domain.Book{BookID: uuid.NewString(), Title: "Unchanged"}

	suite.mockRepo.On("FindBookByID", ctx, existing.BookID).Return(existing, nil).Once()

	book, err := suite.service.UpdateBook(ctx, existing.BookID, dto.UpdateBookRequest{}, "librarian-2")

	suite.Require().NoError(err)
	suite.Equal("Unchanged", book.Title)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateBook", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestUpdateBook_NotFound() {
	ctx := context.Background()
	bookID := uuid.NewString()

	suite.mockRepo.On("FindBookByID", ctx, bookID).Return(nil, apperrors.ErrNotFound).Once()

	book, err := suite.service.UpdateBook(ctx, bookID, dto.UpdateBookRequest{}, "librarian-2")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CatalogServiceTestSuite) TestRemoveBook_Success() {
	ctx := context.Background()
	existing := &domain.Book{BookID: uuid.NewString(), InventoryCode: "INV-042", Title: "Cien años de soledad", Author: "Gabriel García Márquez"}
	actor := "librarian-1"

	suite.mockRepo.On("FindBookByID", ctx, existing.BookID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteBook", ctx, existing.BookID, mock.MatchedBy(func(e domain.AuditEntry) bool {
		return e.Type == domain.AuditBookRemoved && e.Actor == actor && *e.BookID == existing.BookID
	})).Return(nil).Once()

	err := suite.service.RemoveBook(ctx, existing.BookID, actor)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestRemoveBook_ActiveLoanConflict() {
	ctx := context.Background()
	existing := &domain.Book{BookID: uuid.NewString(), InventoryCode: "INV-042"}

	suite.mockRepo.On("FindBookByID", ctx, existing.BookID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteBook", ctx, existing.BookID, mock.AnythingOfType("domain.AuditEntry")).
		Return(apperrors.ErrConflict).Once()

	err := suite.service.RemoveBook(ctx, existing.BookID, "librarian-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *CatalogServiceTestSuite) TestRemoveBook_ReturnedLoanHistoryDoesNotBlock() {
	// Only an active loan blocks removal. A book whose loans were all returned
	// deletes cleanly; the loan rows keep their book_id as a weak reference.
	ctx := context.Background()
	existing := &domain.Book{BookID: uuid.NewString(), InventoryCode: "INV-043", Title: "El Aleph", Author: "Jorge Luis Borges"}

	suite.mockRepo.On("FindBookByID", ctx, existing.BookID).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteBook", ctx, existing.BookID, mock.AnythingOfType("domain.AuditEntry")).
		Return(nil).Once()

	err := suite.service.RemoveBook(ctx, existing.BookID, "librarian-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestGetBookByID_NotFound() {
	ctx := context.Background()
	bookID := uuid.NewString()

	suite.mockRepo.On("FindBookByID", ctx, bookID).Return(nil, apperrors.ErrNotFound).Once()

	book, err := suite.service.GetBookByID(ctx, bookID)

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CatalogServiceTestSuite) TestListBooks_MapsFilterAndToken() {
	ctx := context.Background()
	available := true
	category := string(domain.CategoryLiterature)
	token := "next-page"
	resultToken := "page-after"
	books := []domain.Book{{BookID: uuid.NewString(), Title: "Cien años de soledad"}}

	suite.mockRepo.On("ListBooks", ctx, mock.MatchedBy(func(f portsrepo.BookListFilter) bool {
		return f.Available != nil && *f.Available &&
			f.Category != nil && *f.Category == domain.CategoryLiterature
	}), 20, &token).Return(books, &resultToken, nil).Once()

	resp, err := suite.service.ListBooks(ctx, dto.ListBooksParams{
		Available: &available,
		Category:  &category,
		Limit:     20,
		NextToken: &token,
	})

	suite.Require().NoError(err)
	suite.Len(resp.Books, 1)
	suite.Equal(&resultToken, resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
