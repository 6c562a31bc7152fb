package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"bookworm-backend/internal/apperr"
	bookdomain "bookworm-backend/internal/book/domain"
	bookdto "bookworm-backend/internal/book/dto"
	"bookworm-backend/internal/book/repository"
	"bookworm-backend/pkg/blobstore"
	"bookworm-backend/pkg/cache"
)

const (
	defaultPageSize = 5
	maxPageSize     = 100

	// Per-call bounds on top of the request context. A slow cache must not
	// hold up a request that could be answered from Postgres.
	cacheTimeout = 2 * time.Second
	blobTimeout  = 30 * time.Second
)

// bookUsecase implements BookUsecase
type bookUsecase struct {
	books repository.BookRepository
	blobs blobstore.BlobStore
	cache cache.Cache
	ttl   time.Duration
}

// NewBookUsecase creates a new instance of bookUsecase
func NewBookUsecase(books repository.BookRepository, blobs blobstore.BlobStore, c cache.Cache, ttl time.Duration) BookUsecase {
	return &bookUsecase{
		books: books,
		blobs: blobs,
		cache: c,
		ttl:   ttl,
	}
}

func (u *bookUsecase) Create(ctx context.Context, ownerID string, req *bookdto.CreateBookRequest) (*bookdomain.Book, error) {
	if req.Title == "" || req.Caption == "" || req.Image == "" || req.Rating == 0 {
		return nil, apperr.New(apperr.ErrValidation, "All fields are required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperr.New(apperr.ErrValidation, "Rating must be between 1 and 5")
	}

	blobCtx, cancel := context.WithTimeout(ctx, blobTimeout)
	defer cancel()
	uploaded, err := u.blobs.Upload(blobCtx, req.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: uploading image: %v", apperr.ErrUpstream, err)
	}

	book := &bookdomain.Book{
		Title:         req.Title,
		Caption:       req.Caption,
		Rating:        req.Rating,
		Image:         uploaded.URL,
		ImagePublicID: uploaded.PublicID,
		UserID:        ownerID,
	}

	if err := u.books.Create(ctx, book); err != nil {
		// The cover is orphaned if we keep it; removal is best-effort.
		u.destroyBlob(uploaded.PublicID)
		return nil, fmt.Errorf("%w: creating book: %v", apperr.ErrUpstream, err)
	}

	u.invalidateLists(ctx, ownerID)
	return book, nil
}

func (u *bookUsecase) List(ctx context.Context, ownerID string, page, limit int) (*bookdto.BookListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	version, versionOK := u.listVersion(ctx, ownerID)
	key := cache.BooksPageKey(ownerID, version, page, limit)

	if versionOK {
		var cached bookdto.BookListResponse
		if u.readCached(ctx, key, &cached) {
			return &cached, nil
		}
	}

	books, total, err := u.books.FindByUserID(ctx, ownerID, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%w: listing books: %v", apperr.ErrUpstream, err)
	}

	resp := &bookdto.BookListResponse{
		Success:    true,
		Books:      books,
		Page:       page,
		TotalBooks: total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}

	if versionOK {
		u.storeCached(ctx, key, resp)
	}
	return resp, nil
}

func (u *bookUsecase) ListAll(ctx context.Context, ownerID string) (*bookdto.UserBooksResponse, error) {
	version, versionOK := u.listVersion(ctx, ownerID)
	key := cache.BooksAllKey(ownerID, version)

	if versionOK {
		var cached bookdto.UserBooksResponse
		if u.readCached(ctx, key, &cached) {
			return &cached, nil
		}
	}

	books, err := u.books.FindAllByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing books: %v", apperr.ErrUpstream, err)
	}

	resp := &bookdto.UserBooksResponse{Success: true, Books: books}
	if versionOK {
		u.storeCached(ctx, key, resp)
	}
	return resp, nil
}

func (u *bookUsecase) Delete(ctx context.Context, requesterID, bookID string) error {
	book, err := u.books.FindByID(ctx, bookID)
	if err != nil {
		return fmt.Errorf("%w: finding book: %v", apperr.ErrUpstream, err)
	}
	if book == nil {
		return apperr.New(apperr.ErrNotFound, "Book not found")
	}
	if book.UserID != requesterID {
		return apperr.New(apperr.ErrForbidden, "You can only delete your own books")
	}

	// Blob removal is best-effort; a CDN hiccup must not block the delete.
	u.destroyBlob(book.ImagePublicID)

	if err := u.books.Delete(ctx, bookID); err != nil {
		return fmt.Errorf("%w: deleting book: %v", apperr.ErrUpstream, err)
	}

	u.invalidateLists(ctx, requesterID)
	return nil
}

// listVersion reads the owner's current list version. ok is false when the
// cache is unreachable, in which case the read skips the cache entirely
// rather than risk serving an entry from before an invalidation.
func (u *bookUsecase) listVersion(ctx context.Context, ownerID string) (int64, bool) {
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	data, err := u.cache.Get(cctx, cache.BooksVersionKey(ownerID))
	if errors.Is(err, cache.ErrMiss) {
		return 0, true
	}
	if err != nil {
		log.Printf("[WARN] cache version read for user %s: %v", ownerID, err)
		return 0, false
	}

	version, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, false
	}
	return version, true
}

// invalidateLists bumps the owner's list version so every cached page and
// the unpaginated list become unreachable at once. A cache failure here is
// logged, not returned: the store is authoritative and stale entries lapse
// via TTL.
func (u *bookUsecase) invalidateLists(ctx context.Context, ownerID string) {
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	if _, err := u.cache.Incr(cctx, cache.BooksVersionKey(ownerID)); err != nil {
		log.Printf("[WARN] cache invalidation for user %s: %v", ownerID, err)
	}
}

func (u *bookUsecase) readCached(ctx context.Context, key string, out interface{}) bool {
	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	data, err := u.cache.Get(cctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("[WARN] cache read %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[WARN] cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (u *bookUsecase) storeCached(ctx context.Context, key string, val interface{}) {
	data, err := json.Marshal(val)
	if err != nil {
		log.Printf("[WARN] cache encode %s: %v", key, err)
		return
	}

	cctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()
	if err := u.cache.Set(cctx, key, data, u.ttl); err != nil {
		log.Printf("[WARN] cache write %s: %v", key, err)
	}
}

func (u *bookUsecase) destroyBlob(publicID string) {
	if publicID == "" {
		return
	}
	// Detached from the request context: the response should not wait on
	// the CDN, and a request cancel must not strand the asset.
	ctx, cancel := context.WithTimeout(context.Background(), blobTimeout)
	defer cancel()
	if err := u.blobs.Destroy(ctx, publicID); err != nil {
		log.Printf("[WARN] destroying blob %s: %v", publicID, err)
	}
}
