package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is a single entry in a user's reading list. Ownership is by username
// value, not a relational reference, so every query against books must be
// scoped to the owner.
type Book struct {
	ID              string    `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerUsername   string    `gorm:"not null;index" json:"owner_username"`
	Title           string    `gorm:"not null" json:"title"`
	Author          string    `gorm:"default:''" json:"author"`
	Rating          int       `gorm:"default:0" json:"rating"`
	CurrentReadPage int       `gorm:"default:0" json:"current_read_page"`
	TotalPageCount  int       `gorm:"default:0" json:"total_page_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (book *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	return
}

func (Book) TableName() string {
	return "books"
}
