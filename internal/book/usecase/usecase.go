package usecase

import (
	"context"

	bookdomain "bookworm-backend/internal/book/domain"
	bookdto "bookworm-backend/internal/book/dto"
)

// BookUsecase defines the interface for book catalog business logic
type BookUsecase interface {
	// Create uploads the cover image and persists a new book for the owner
	Create(ctx context.Context, ownerID string, req *bookdto.CreateBookRequest) (*bookdomain.Book, error)

	// List returns one page of the owner's books, newest-first, through
	// the cache
	List(ctx context.Context, ownerID string, page, limit int) (*bookdto.BookListResponse, error)

	// ListAll returns every book owned by the caller, through the cache
	ListAll(ctx context.Context, ownerID string) (*bookdto.UserBooksResponse, error)

	// Delete removes a book the requester owns, its cover blob, and
	// invalidates the owner's cached lists
	Delete(ctx context.Context, requesterID, bookID string) error
}

// FavoriteUsecase defines the interface for favorites business logic
type FavoriteUsecase interface {
	// Add favorites an existing book for the user. Any user may favorite
	// any book, not just their own.
	Add(ctx context.Context, userID, bookID string) (*bookdomain.Favorite, error)

	// Remove deletes the user's favorite for the book
	Remove(ctx context.Context, userID, bookID string) error

	// List returns the user's favorites with books embedded, through the
	// cache
	List(ctx context.Context, userID string) (*bookdto.FavoriteListResponse, error)
}
