package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"booknook/internal/dto"
	"booknook/internal/middleware"
	"booknook/internal/service"
	"booknook/internal/session"
)

type BookHandler struct {
	books    service.BookService
	sessions session.Store
}

func NewBookHandler(books service.BookService, sessions session.Store) *BookHandler {
	return &BookHandler{books: books, sessions: sessions}
}

// Index renders the caller's book list, or the anonymous landing view.
func (h *BookHandler) Index(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.HTML(http.StatusOK, "index.html", gin.H{})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	books, err := h.books.List(ctx, identity.Username)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Identity": identity,
		"Books":    books,
		"Flashes":  h.sessions.PopFlashes(ctx, identity.SessionID),
	})
}

// AddBookForm renders the empty add-book form.
func (h *BookHandler) AddBookForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_book.html", gin.H{
		"Identity": middleware.CurrentIdentity(c),
	})
}

// AddBook inserts a book from the raw form fields. Missing or non-numeric
// values default to zero; there is no validation on this path.
func (h *BookHandler) AddBook(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.books.Add(ctx,
		identity.Username,
		c.PostForm("title"),
		c.PostForm("author"),
		formInt(c, "rating"),
		formInt(c, "current_read_page"),
		formInt(c, "total_page_count"),
	)
	if err != nil {
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// EditBookForm renders the edit form prefilled with the stored book.
func (h *BookHandler) EditBookForm(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.books.Get(ctx, identity.Username, c.Param("book_id"))
	if err != nil {
		h.sessions.Flash(ctx, identity.SessionID, "error", "Book not found")
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "edit_book.html", gin.H{
		"Identity": identity,
		"Book":     book,
		"Flashes":  h.sessions.PopFlashes(ctx, identity.SessionID),
	})
}

// EditBook validates and applies an edit. Invalid submissions re-render the
// form with per-field messages and leave the stored book untouched.
func (h *BookHandler) EditBook(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	bookID := c.Param("book_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.books.Get(ctx, identity.Username, bookID)
	if err != nil {
		h.sessions.Flash(ctx, identity.SessionID, "error", "Book not found")
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form dto.BookForm
	if err := c.ShouldBind(&form); err != nil {
		for _, message := range dto.ValidationMessages(err) {
			h.sessions.Flash(ctx, identity.SessionID, "error", message)
		}
		c.HTML(http.StatusOK, "edit_book.html", gin.H{
			"Identity": identity,
			"Book":     book,
			"Form":     &form,
			"Flashes":  h.sessions.PopFlashes(ctx, identity.SessionID),
		})
		return
	}

	err = h.books.Update(ctx, identity.Username, bookID,
		form.Title, form.Author, form.Rating, form.CurrentReadPage, form.TotalPageCount)
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			h.sessions.Flash(ctx, identity.SessionID, "error", "Book not found")
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.sessions.Flash(ctx, identity.SessionID, "success", "Book updated successfully")
	c.Redirect(http.StatusFound, "/")
}

// DeleteBook removes one of the caller's books.
func (h *BookHandler) DeleteBook(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.books.Delete(ctx, identity.Username, c.Param("book_id")); err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			h.sessions.Flash(ctx, identity.SessionID, "error", "Book not found")
			c.Redirect(http.StatusFound, "/")
			return
		}
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	h.sessions.Flash(ctx, identity.SessionID, "success", "Book deleted successfully")
	c.Redirect(http.StatusFound, "/")
}

// formInt coerces a form value to an int, defaulting to 0 when the field is
// absent or not numeric.
func formInt(c *gin.Context, name string) int {
	value := c.PostForm(name)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
