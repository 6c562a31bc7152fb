package repository

import (
	"context"
	"errors"
	"time"

	bookdomain "bookworm-backend/internal/book/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// bookRepository implements BookRepository using GORM
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new GORM-based BookRepository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *bookdomain.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	book.CreatedAt = time.Now()
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*bookdomain.Book, error) {
	var book bookdomain.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*bookdomain.Book, int64, error) {
	var books []*bookdomain.Book
	var total int64

	query := r.db.WithContext(ctx).Model(&bookdomain.Book{}).Where("user_id = ?", userID)

	// Count is scoped to the same owner as the page query.
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&books).Error
	return books, total, err
}

func (r *bookRepository) FindAllByUserID(ctx context.Context, userID string) ([]*bookdomain.Book, error) {
	var books []*bookdomain.Book
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&books).Error
	return books, err
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	// Favorites referencing the book go with it.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&bookdomain.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&bookdomain.Book{}, "id = ?", id).Error
	})
}
