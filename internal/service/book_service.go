package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"booknook/internal/models"
	"booknook/internal/repository"
)

var ErrBookNotFound = errors.New("book not found")

// BookService owns the reading-list operations. All of them act on behalf of
// an owner username; edits and deletes of another user's book report
// ErrBookNotFound rather than leaking its existence.
type BookService interface {
	Add(ctx context.Context, owner, title, author string, rating, currentReadPage, totalPageCount int) error
	List(ctx context.Context, owner string) ([]models.Book, error)
	Get(ctx context.Context, owner, id string) (*models.Book, error)
	Update(ctx context.Context, owner, id, title, author string, rating, currentReadPage, totalPageCount int) error
	Delete(ctx context.Context, owner, id string) error
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) Add(ctx context.Context, owner, title, author string, rating, currentReadPage, totalPageCount int) error {
	book := &models.Book{
		OwnerUsername:   owner,
		Title:           title,
		Author:          author,
		Rating:          rating,
		CurrentReadPage: currentReadPage,
		TotalPageCount:  totalPageCount,
	}
	return s.repo.Create(ctx, book)
}

func (s *bookService) List(ctx context.Context, owner string) ([]models.Book, error) {
	return s.repo.ListByOwner(ctx, owner)
}

func (s *bookService) Get(ctx context.Context, owner, id string) (*models.Book, error) {
	book, err := s.repo.FindByOwner(ctx, owner, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *bookService) Update(ctx context.Context, owner, id, title, author string, rating, currentReadPage, totalPageCount int) error {
	fields := map[string]interface{}{
		"title":             title,
		"author":            author,
		"rating":            rating,
		"current_read_page": currentReadPage,
		"total_page_count":  totalPageCount,
	}
	if err := s.repo.Update(ctx, owner, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

func (s *bookService) Delete(ctx context.Context, owner, id string) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}
