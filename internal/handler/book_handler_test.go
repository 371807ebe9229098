package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"booknook/internal/models"
	"booknook/internal/service"
)

// MockBookService mocks the BookService interface
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) Add(ctx context.Context, owner, title, author string, rating, currentReadPage, totalPageCount int) error {
	args := m.Called(ctx, owner, title, author, rating, currentReadPage, totalPageCount)
	return args.Error(0)
}

func (m *MockBookService) List(ctx context.Context, owner string) ([]models.Book, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockBookService) Get(ctx context.Context, owner, id string) (*models.Book, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookService) Update(ctx context.Context, owner, id, title, author string, rating, currentReadPage, totalPageCount int) error {
	args := m.Called(ctx, owner, id, title, author, rating, currentReadPage, totalPageCount)
	return args.Error(0)
}

func (m *MockBookService) Delete(ctx context.Context, owner, id string) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

func TestIndex_Anonymous(t *testing.T) {
	mockBooks := new(MockBookService)
	handler := NewBookHandler(mockBooks, &fakeSessionStore{})
	router := setupRouter()
	router.GET("/", handler.Index)

	w := get(router, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log in")
	mockBooks.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestIndex_ListsOwnBooks(t *testing.T) {
	mockBooks := new(MockBookService)
	handler := NewBookHandler(mockBooks, &fakeSessionStore{})
	router := setupRouter()
	router.GET("/", asIdentity("alice"), handler.Index)

	mockBooks.On("List", mock.Anything, "alice").Return([]models.Book{
		{ID: "book-1", OwnerUsername: "alice", Title: "Dune", Author: "Herbert", Rating: 5, CurrentReadPage: 10, TotalPageCount: 500},
	}, nil)

	w := get(router, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")
	assert.Contains(t, w.Body.String(), "Herbert")
	assert.Contains(t, w.Body.String(), "5/5")
	mockBooks.AssertExpectations(t)
}

// Concrete add scenario: rating 5, pages 10/500 land exactly as submitted.
func TestAddBook_StoresSubmittedValues(t *testing.T) {
	mockBooks := new(MockBookService)
	handler := NewBookHandler(mockBooks, &fakeSessionStore{})
	router := setupRouter()
	router.POST("/add_book", asIdentity("alice"), handler.AddBook)

	mockBooks.On("Add", mock.Anything, "alice", "Dune", "Herbert", 5, 10, 500).Return(nil)

	w := postForm(router, "/add_book", url.Values{
		"title":             {"Dune"},
		"author":            {"Herbert"},
		"rating":            {"5"},
		"current_read_page": {"10"},
		"total_page_count":  {"500"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	mockBooks.AssertExpectations(t)
}

func TestAddBook_OmittedFieldsDefault(t *testing.T) {
	mockBooks := new(MockBookService)
	handler := NewBookHandler(mockBooks, &fakeSessionStore{})
	router := setupRouter()
	router.POST("/add_book", asIdentity("alice"), handler.AddBook)

	mockBooks.On("Add", mock.Anything, "alice", "Dune", "", 0, 0, 0).Return(nil)

	w := postForm(router, "/add_book", url.Values{
		"title": {"Dune"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	mockBooks.AssertExpectations(t)
}

func TestEditBook_InvalidRatingRejectedWithoutMutation(t *testing.T) {
	mockBooks := new(MockBookService)
	sessions := &fakeSessionStore{}
	handler := NewBookHandler(mockBooks, sessions)
	router := setupRouter()
	router.POST("/edit_book/:book_id", asIdentity("alice"), handler.EditBook)

	mockBooks.On("Get", mock.Anything, "alice", "book-1").Return(&models.Book{
		ID: "book-1", OwnerUsername: "alice", Title: "Dune", Author: "Herbert",
	}, nil)

	w := postForm(router, "/edit_book/book-1", url.Values{
		"title":  {"Dune"},
		"author": {"Herbert"},
		"rating": {"7"},
	})

	// re-rendered form, no redirect, no update
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rating: must be between 1 and 5")
	mockBooks.AssertNotCalled(t, "Update",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEditBook_PageCountOutOfRangeRejected(t *testing.T) {
	mockBooks := new(MockBookService)
	handler := NewBookHandler(mockBooks, &fakeSessionStore{})
	router := setupRouter()
	router.POST("/edit_book/:book_id", asIdentity("alice"), handler.EditBook)

	mockBooks.On("Get", mock.Anything, "alice", "book-1").Return(&models.Book{
		ID: "book-1", OwnerUsername: "alice", Title: "Dune", Author: "Herbert",
	}, nil)

	w := postForm(router, "/edit_book/book-1", url.Values{
		"title":            {"Dune"},
		"author":           {"Herbert"},
		"total_page_count": {"100000"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Total Book Page must be between 1 and 99999")
	mockBooks.AssertNotCalled(t, "Update",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEditBook_Success(t *testing.T) {
	mockBooks := new(MockBookService)
	sessions := &fakeSessionStore{}
	handler := NewBookHandler(mockBooks, sessions)
	router := setupRouter()
	router.POST("/edit_book/:book_id", asIdentity("alice"), handler.EditBook)

	mockBooks.On("Get", mock.Anything, "alice", "book-1").Return(&models.Book{
		ID: "book-1", OwnerUsername: "alice", Title: "Dune", Author: "Herbert",
	}, nil)
	mockBooks.On("Update", mock.Anything, "alice", "book-1", "Dune Messiah", "Frank Herbert", 4, 20, 350).Return(nil)

	w := postForm(router, "/edit_book/book-1", url.Values{
		"title":             {"Dune Messiah"},
		"author":            {"Frank Herbert"},
		"rating":            {"4"},
		"current_read_page": {"20"},
		"total_page_count":  {"350"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	if assert.Len(t, sessions.flashes, 1) {
		assert.Equal(t, "success", sessions.flashes[0].Level)
		assert.Equal(t, "Book updated successfully", sessions.flashes[0].Message)
	}
	mockBooks.AssertExpectations(t)
}

func TestEditBook_NotFound(t *testing.T) {
	mockBooks := new(MockBookService)
	sessions := &fakeSessionStore{}
	handler := NewBookHandler(mockBooks, sessions)
	router := setupRouter()
	router.GET("/edit_book/:book_id", asIdentity("alice"), handler.EditBookForm)

	mockBooks.On("Get", mock.Anything, "alice", "missing-id").Return(nil, service.ErrBookNotFound)

	w := get(router, "/edit_book/missing-id")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	if assert.Len(t, sessions.flashes, 1) {
		assert.Equal(t, "error", sessions.flashes[0].Level)
		assert.Equal(t, "Book not found", sessions.flashes[0].Message)
	}
}

func TestDeleteBook_Success(t *testing.T) {
	mockBooks := new(MockBookService)
	sessions := &fakeSessionStore{}
	handler := NewBookHandler(mockBooks, sessions)
	router := setupRouter()
	router.POST("/delete_book/:book_id", asIdentity("alice"), handler.DeleteBook)

	mockBooks.On("Delete", mock.Anything, "alice", "book-1").Return(nil)

	w := postForm(router, "/delete_book/book-1", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	if assert.Len(t, sessions.flashes, 1) {
		assert.Equal(t, "Book deleted successfully", sessions.flashes[0].Message)
	}
	mockBooks.AssertExpectations(t)
}

func TestDeleteBook_ForeignBookBehavesAsMissing(t *testing.T) {
	mockBooks := new(MockBookService)
	sessions := &fakeSessionStore{}
	handler := NewBookHandler(mockBooks, sessions)
	router := setupRouter()
	router.POST("/delete_book/:book_id", asIdentity("alice"), handler.DeleteBook)

	mockBooks.On("Delete", mock.Anything, "alice", "bobs-book").Return(service.ErrBookNotFound)

	w := postForm(router, "/delete_book/bobs-book", url.Values{})

	assert.Equal(t, http.StatusFound, w.Code)
	if assert.Len(t, sessions.flashes, 1) {
		assert.Equal(t, "Book not found", sessions.flashes[0].Message)
	}
}
