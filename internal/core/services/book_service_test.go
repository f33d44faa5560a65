package services_test

import (
	"context"
	"testing"

	"github.com/bookshare/bookshare_backend/internal/apperrors"
	"github.com/bookshare/bookshare_backend/internal/core/domain"
	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/core/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock BookRepository ---
type MockBookRepository struct {
	mock.Mock
	SaveBookFn              func(ctx context.Context, book domain.Book) error
	FindBookByIDFn          func(ctx context.Context, bookID string) (*domain.Book, error)
	ListVisibleBooksFn      func(ctx context.Context, limit, offset int) ([]domain.Book, error)
	FindVisibleBooksByIDsFn func(ctx context.Context, bookIDs []string) ([]domain.Book, error)
}

func (m *MockBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	if m.SaveBookFn != nil {
		return m.SaveBookFn(ctx, book)
	}
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	if m.FindBookByIDFn != nil {
		return m.FindBookByIDFn(ctx, bookID)
	}
	args := m.Called(ctx, bookID)
	var book *domain.Book
	if args.Get(0) != nil {
		book = args.Get(0).(*domain.Book)
	}
	return book, args.Error(1)
}

func (m *MockBookRepository) ListVisibleBooks(ctx context.Context, limit, offset int) ([]domain.Book, error) {
	if m.ListVisibleBooksFn != nil {
		return m.ListVisibleBooksFn(ctx, limit, offset)
	}
	args := m.Called(ctx, limit, offset)
	var books []domain.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]domain.Book)
	}
	return books, args.Error(1)
}

func (m *MockBookRepository) FindVisibleBooksByIDs(ctx context.Context, bookIDs []string) ([]domain.Book, error) {
	if m.FindVisibleBooksByIDsFn != nil {
		return m.FindVisibleBooksByIDsFn(ctx, bookIDs)
	}
	args := m.Called(ctx, bookIDs)
	var books []domain.Book
	if args.Get(0) != nil {
		books = args.Get(0).([]domain.Book)
	}
	return books, args.Error(1)
}

// --- Test Suite ---
type BookServiceTestSuite struct {
	suite.Suite
	mockBookRepo *MockBookRepository
	service      portssvc.BookSvcFacade
}

func (suite *BookServiceTestSuite) SetupTest() {
	suite.mockBookRepo = new(MockBookRepository)
	suite.service = services.NewBookService(suite.mockBookRepo)
}

func (suite *BookServiceTestSuite) TestCreateBook_Success() {
	ctx := context.Background()
	creatorID := uuid.NewString()
	req := dto.CreateBookRequest{
		Title:       "  The Go Programming Language  ",
		Author:      "Donovan",
		Description: "Reference",
		Tags:        "go, programming, ",
	}

	suite.mockBookRepo.On("SaveBook", ctx, mock.MatchedBy(func(book domain.Book) bool {
		return book.Title == "The Go Programming Language" &&
			book.PDFPath == "uploads/books/pdf/the-go-programming-language-123.pdf" &&
			book.CreatedBy == creatorID &&
			book.IsActive != nil && *book.IsActive &&
			len(book.Tags) == 2
	})).Return(nil).Once()

	book, err := suite.service.CreateBook(ctx, creatorID, req, "uploads/books/pdf/the-go-programming-language-123.pdf")

	suite.Require().NoError(err)
	suite.Require().NotNil(book)
	suite.NotEmpty(book.BookID)
	suite.Equal([]string{"go", "programming"}, book.Tags)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *BookServiceTestSuite) TestCreateBook_MissingTitle() {
	ctx := context.Background()

	book, err := suite.service.CreateBook(ctx, uuid.NewString(), dto.CreateBookRequest{Title: "   "}, "uploads/books/pdf/x.pdf")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBookRepo.AssertNotCalled(suite.T(), "SaveBook", mock.Anything, mock.Anything)
}

func (suite *BookServiceTestSuite) TestCreateBook_MissingPDF() {
	ctx := context.Background()

	book, err := suite.service.CreateBook(ctx, uuid.NewString(), dto.CreateBookRequest{Title: "Title"}, "")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BookServiceTestSuite) TestGetBookByID_Success() {
	ctx := context.Background()
	bookID := uuid.NewString()
	active := true
	expected := &domain.Book{BookID: bookID, Title: "Found", IsActive: &active}

	suite.mockBookRepo.On("FindBookByID", ctx, bookID).Return(expected, nil).Once()

	book, err := suite.service.GetBookByID(ctx, bookID)

	suite.Require().NoError(err)
	suite.Equal(expected, book)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func (suite *BookServiceTestSuite) TestGetBookByID_LegacyNilFlagIsVisible() {
	ctx := context.Background()
	bookID := uuid.NewString()
	// Rows written before the visibility flag existed have no value at all.
	expected := &domain.Book{BookID: bookID, Title: "Legacy", IsActive: nil}

	suite.mockBookRepo.On("FindBookByID", ctx, bookID).Return(expected, nil).Once()

	book, err := suite.service.GetBookByID(ctx, bookID)

	suite.Require().NoError(err)
	suite.Equal(expected, book)
}

func (suite *BookServiceTestSuite) TestGetBookByID_HiddenBookNotFound() {
	ctx := context.Background()
	bookID := uuid.NewString()
	inactive := false
	hidden := &domain.Book{BookID: bookID, Title: "Hidden", IsActive: &inactive}

	suite.mockBookRepo.On("FindBookByID", ctx, bookID).Return(hidden, nil).Once()

	book, err := suite.service.GetBookByID(ctx, bookID)

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BookServiceTestSuite) TestGetBookByID_MalformedID() {
	ctx := context.Background()

	book, err := suite.service.GetBookByID(ctx, "not-a-uuid")

	suite.Require().Error(err)
	suite.Nil(book)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBookRepo.AssertNotCalled(suite.T(), "FindBookByID", mock.Anything, mock.Anything)
}

func (suite *BookServiceTestSuite) TestListBooks_PassesPaging() {
	ctx := context.Background()
	expected := []domain.Book{{BookID: uuid.NewString(), Title: "One"}}

	suite.mockBookRepo.On("ListVisibleBooks", ctx, 20, 40).Return(expected, nil).Once()

	books, err := suite.service.ListBooks(ctx, 20, 40)

	suite.Require().NoError(err)
	suite.Equal(expected, books)
	suite.mockBookRepo.AssertExpectations(suite.T())
}

func TestBookService(t *testing.T) {
	suite.Run(t, new(BookServiceTestSuite))
}
