package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"bookworm-backend/internal/apperr"
	bookdomain "bookworm-backend/internal/book/domain"
	bookdto "bookworm-backend/internal/book/dto"
	"bookworm-backend/internal/book/repository"
	"bookworm-backend/pkg/cache"
)

// favoriteUsecase implements FavoriteUsecase
type favoriteUsecase struct {
	favorites repository.FavoriteRepository
	books     repository.BookRepository
	cache     cache.Cache
	ttl       time.Duration
}

// NewFavoriteUsecase creates a new instance of favoriteUsecase
func NewFavoriteUsecase(favorites repository.FavoriteRepository, books repository.BookRepository, c cache.Cache, ttl time.Duration) FavoriteUsecase {
	return &favoriteUsecase{
		favorites: favorites,
		books:     books,
		cache:     c,
		ttl:       ttl,
	}
}

func (u *favoriteUsecase) Add(ctx context.Context, userID, bookID string) (*bookdomain.Favorite, error) {
	if bookID == "" {
		return nil, apperr.New(apperr.ErrValidation, "bookId is required")
	}

	book, err := u.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("%w: finding book: %v", apperr.ErrUpstream, err)
	}
	if book == nil {
		return nil, apperr.New(apperr.ErrNotFound, "Book not found")
	}

	// Fail fast on the common case; the unique index still decides races.
	existing, err := u.favorites.Find(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("%w: checking favorite: %v", apperr.ErrUpstream, err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.ErrConflict, "You have already favorited this book")
	}

	fav := &bookdomain.Favorite{UserID: userID, BookID: bookID}
	if err := u.favorites.Create(ctx, fav); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: creating favorite: %v", apperr.ErrUpstream, err)
	}

	u.invalidate(ctx, userID)
	fav.Book = book
	return fav, nil
}

func (u *favoriteUsecase) Remove(ctx context.Context, userID, bookID string) error {
	deleted, err := u.favorites.Delete(ctx, userID, bookID)
	if err != nil {
		return fmt.Errorf("%w: deleting favorite: %v", apperr.ErrUpstream, err)
	}
	if !deleted {
		return apperr.New(apperr.ErrNotFound, "Favorite not found")
	}

	u.invalidate(ctx, userID)
	return nil
}

func (u *favoriteUsecase) List(ctx context.Context, userID string) (*bookdto.FavoriteListResponse, error) {
	key := cache.FavoritesKey(userID)

	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	data, err := u.cache.Get(cctx, key)
	cancel()
	if err == nil {
		var cached bookdto.FavoriteListResponse
		if uerr := json.Unmarshal(data, &cached); uerr == nil {
			return &cached, nil
		} else {
			log.Printf("[WARN] cache decode %s: %v", key, uerr)
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("[WARN] cache read %s: %v", key, err)
	}

	favs, err := u.favorites.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing favorites: %v", apperr.ErrUpstream, err)
	}

	resp := &bookdto.FavoriteListResponse{Success: true, Favorites: favs}

	if data, err := json.Marshal(resp); err == nil {
		cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
		if err := u.cache.Set(cctx, key, data, u.ttl); err != nil {
			log.Printf("[WARN] cache write %s: %v", key, err)
		}
		cancel()
	}
	return resp, nil
}

// invalidate drops the user's favorites cache entry. Logged, never fatal.
func (u *favoriteUsecase) invalidate(ctx context.Context, userID string) {
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	if err := u.cache.Del(cctx, cache.FavoritesKey(userID)); err != nil {
		log.Printf("[WARN] cache invalidation for user %s: %v", userID, err)
	}
}
