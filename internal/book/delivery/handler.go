package delivery

import (
	"log"
	"net/http"
	"strconv"

	"bookworm-backend/internal/apperr"
	bookdto "bookworm-backend/internal/book/dto"
	"bookworm-backend/internal/book/usecase"

	"github.com/gin-gonic/gin"
)

// BookHandler handles book and favorite HTTP requests
type BookHandler struct {
	bookUsecase     usecase.BookUsecase
	favoriteUsecase usecase.FavoriteUsecase
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(bookUsecase usecase.BookUsecase, favoriteUsecase usecase.FavoriteUsecase) *BookHandler {
	return &BookHandler{
		bookUsecase:     bookUsecase,
		favoriteUsecase: favoriteUsecase,
	}
}

// Create creates a new book owned by the caller
// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req bookdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	book, err := h.bookUsecase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Book created successfully",
		"book":    book,
	})
}

// List returns one page of the caller's books
// GET /api/books?page=1&limit=5
func (h *BookHandler) List(c *gin.Context) {
	userID := c.GetString("userID")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	resp, err := h.bookUsecase.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListAll returns every book the caller owns
// GET /api/books/user
func (h *BookHandler) ListAll(c *gin.Context) {
	userID := c.GetString("userID")

	resp, err := h.bookUsecase.ListAll(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete removes a book the caller owns
// DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	userID := c.GetString("userID")
	bookID := c.Param("id")

	if err := h.bookUsecase.Delete(c.Request.Context(), userID, bookID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Book deleted successfully"})
}

// AddFavorite favorites a book for the caller
// POST /api/books/favorites
func (h *BookHandler) AddFavorite(c *gin.Context) {
	userID := c.GetString("userID")

	var req bookdto.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	fav, err := h.favoriteUsecase.Add(c.Request.Context(), userID, req.BookID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Book added to favorites",
		"favorite": fav,
	})
}

// RemoveFavorite unfavorites a book for the caller
// DELETE /api/books/favorites/:bookId
func (h *BookHandler) RemoveFavorite(c *gin.Context) {
	userID := c.GetString("userID")
	bookID := c.Param("bookId")

	if err := h.favoriteUsecase.Remove(c.Request.Context(), userID, bookID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Book removed from favorites"})
}

// ListFavorites returns the caller's favorites
// GET /api/books/favorites
func (h *BookHandler) ListFavorites(c *gin.Context) {
	userID := c.GetString("userID")

	resp, err := h.favoriteUsecase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"success": false, "message": apperr.Message(err)})
}
