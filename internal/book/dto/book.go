package dto

import bookdomain "bookworm-backend/internal/book/domain"

type CreateBookRequest struct {
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Rating  int    `json:"rating"`
	// Base64 data-URI image payload from the mobile client.
	Image string `json:"image"`
}

type AddFavoriteRequest struct {
	BookID string `json:"bookId"`
}

// BookListResponse is the paginated list payload. It is what gets cached,
// so a cache hit returns exactly what the original query produced.
type BookListResponse struct {
	Success    bool               `json:"success"`
	Books      []*bookdomain.Book `json:"books"`
	Page       int                `json:"page"`
	TotalBooks int64              `json:"totalBooks"`
	TotalPages int                `json:"totalPages"`
}

type UserBooksResponse struct {
	Success bool               `json:"success"`
	Books   []*bookdomain.Book `json:"books"`
}

type FavoriteListResponse struct {
	Success   bool                   `json:"success"`
	Favorites []*bookdomain.Favorite `json:"favorites"`
}
