package repository

import (
	"context"
	"errors"
	"time"

	"bookworm-backend/internal/apperr"
	bookdomain "bookworm-backend/internal/book/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// favoriteRepository implements FavoriteRepository using GORM
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new GORM-based FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, fav *bookdomain.Favorite) error {
	if fav.ID == "" {
		fav.ID = uuid.New().String()
	}
	fav.CreatedAt = time.Now()
	err := r.db.WithContext(ctx).Create(fav).Error
	// The unique index decides the race between concurrent adds; the loser
	// surfaces as a conflict.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.New(apperr.ErrConflict, "You have already favorited this book")
	}
	return err
}

func (r *favoriteRepository) Find(ctx context.Context, userID, bookID string) (*bookdomain.Favorite, error) {
	var fav bookdomain.Favorite
	err := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fav, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, bookID string) (bool, error) {
	result := r.db.WithContext(ctx).Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&bookdomain.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *favoriteRepository) FindByUserID(ctx context.Context, userID string) ([]*bookdomain.Favorite, error) {
	var favs []*bookdomain.Favorite
	err := r.db.WithContext(ctx).Preload("Book").Where("user_id = ?", userID).Order("created_at DESC").Find(&favs).Error
	return favs, err
}
