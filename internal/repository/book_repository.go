package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"booknook/internal/models"
)

// BookRepository defines the interface for book data operations. Every query
// is scoped to the owning username; a book belonging to another user is
// indistinguishable from a missing one.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	ListByOwner(ctx context.Context, owner string) ([]models.Book, error)
	FindByOwner(ctx context.Context, owner, id string) (*models.Book, error)
	Update(ctx context.Context, owner, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, owner, id string) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) ListByOwner(ctx context.Context, owner string) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).
		Where("owner_username = ?", owner).
		Order("created_at ASC").
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *bookRepository) FindByOwner(ctx context.Context, owner, id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).
		Where("owner_username = ? AND id = ?", owner, id).
		First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Update(ctx context.Context, owner, id string, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("owner_username = ? AND id = ?", owner, id).
		Updates(fields)

	if result.Error != nil {
		return fmt.Errorf("update book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, owner, id string) error {
	result := r.db.WithContext(ctx).
		Where("owner_username = ? AND id = ?", owner, id).
		Delete(&models.Book{})

	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
