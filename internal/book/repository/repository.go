package repository

import (
	"context"

	bookdomain "bookworm-backend/internal/book/domain"
)

// BookRepository defines the interface for book data access
type BookRepository interface {
	// Create persists a new book
	Create(ctx context.Context, book *bookdomain.Book) error

	// FindByID finds a book by its ID
	FindByID(ctx context.Context, id string) (*bookdomain.Book, error)

	// FindByUserID returns one page of the owner's books, newest-first,
	// with the owner-scoped total count
	FindByUserID(ctx context.Context, userID string, limit, offset int) ([]*bookdomain.Book, int64, error)

	// FindAllByUserID returns every book owned by the user, newest-first
	FindAllByUserID(ctx context.Context, userID string) ([]*bookdomain.Book, error)

	// Delete removes a book and any favorites referencing it
	Delete(ctx context.Context, id string) error
}

// FavoriteRepository defines the interface for favorite data access
type FavoriteRepository interface {
	// Create persists a favorite. Returns apperr.ErrConflict when the
	// (user, book) pair already exists.
	Create(ctx context.Context, fav *bookdomain.Favorite) error

	// Find returns the favorite for (user, book), or nil if absent
	Find(ctx context.Context, userID, bookID string) (*bookdomain.Favorite, error)

	// Delete removes the favorite for (user, book); reports whether a row
	// was actually deleted
	Delete(ctx context.Context, userID, bookID string) (bool, error)

	// FindByUserID returns the user's favorites with their books embedded
	FindByUserID(ctx context.Context, userID string) ([]*bookdomain.Favorite, error)
}
