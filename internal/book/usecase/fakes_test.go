package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"bookworm-backend/internal/apperr"
	bookdomain "bookworm-backend/internal/book/domain"
	"bookworm-backend/pkg/blobstore"
)

// fakeBookRepo is an in-memory BookRepository with deterministic
// newest-first ordering (creation order).
type fakeBookRepo struct {
	mu    sync.Mutex
	books []*bookdomain.Book
	seq   int

	pageCalls int
	allCalls  int

	createErr error
	deleteErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{}
}

func (f *fakeBookRepo) Create(_ context.Context, book *bookdomain.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.seq++
	if book.ID == "" {
		book.ID = "book-" + strconv.Itoa(f.seq)
	}
	book.CreatedAt = time.Unix(int64(f.seq), 0)
	f.books = append(f.books, book)
	return nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id string) (*bookdomain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookRepo) ownedNewestFirst(userID string) []*bookdomain.Book {
	var owned []*bookdomain.Book
	for _, b := range f.books {
		if b.UserID == userID {
			owned = append(owned, b)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned
}

func (f *fakeBookRepo) FindByUserID(_ context.Context, userID string, limit, offset int) ([]*bookdomain.Book, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++

	owned := f.ownedNewestFirst(userID)
	total := int64(len(owned))

	if offset >= len(owned) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], total, nil
}

func (f *fakeBookRepo) FindAllByUserID(_ context.Context, userID string) ([]*bookdomain.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allCalls++
	return f.ownedNewestFirst(userID), nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, b := range f.books {
		if b.ID == id {
			f.books = append(f.books[:i], f.books[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeBlobStore records uploads and destroys.
type fakeBlobStore struct {
	mu        sync.Mutex
	seq       int
	destroyed []string

	uploadErr  error
	destroyErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{}
}

func (f *fakeBlobStore) Upload(_ context.Context, _ string) (*blobstore.UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.seq++
	id := "books/img-" + strconv.Itoa(f.seq)
	return &blobstore.UploadResult{
		URL:      "https://cdn.example.com/" + id + ".jpg",
		PublicID: id,
	}, nil
}

func (f *fakeBlobStore) Destroy(_ context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.destroyed = append(f.destroyed, publicID)
	return nil
}

// fakeFavoriteRepo is an in-memory FavoriteRepository that enforces the
// (user, book) uniqueness constraint like the database index would.
type fakeFavoriteRepo struct {
	mu   sync.Mutex
	favs []*bookdomain.Favorite
	seq  int

	listCalls int

	// forces Create to report a duplicate even when Find saw nothing,
	// simulating the loser of a concurrent add
	raceConflict bool
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{}
}

func (f *fakeFavoriteRepo) Create(_ context.Context, fav *bookdomain.Favorite) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceConflict {
		return apperr.New(apperr.ErrConflict, "You have already favorited this book")
	}
	for _, existing := range f.favs {
		if existing.UserID == fav.UserID && existing.BookID == fav.BookID {
			return apperr.New(apperr.ErrConflict, "You have already favorited this book")
		}
	}
	f.seq++
	fav.ID = "fav-" + strconv.Itoa(f.seq)
	fav.CreatedAt = time.Unix(int64(f.seq), 0)
	f.favs = append(f.favs, fav)
	return nil
}

func (f *fakeFavoriteRepo) Find(_ context.Context, userID, bookID string) (*bookdomain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fav := range f.favs {
		if fav.UserID == userID && fav.BookID == bookID {
			return fav, nil
		}
	}
	return nil, nil
}

func (f *fakeFavoriteRepo) Delete(_ context.Context, userID, bookID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, fav := range f.favs {
		if fav.UserID == userID && fav.BookID == bookID {
			f.favs = append(f.favs[:i], f.favs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFavoriteRepo) FindByUserID(_ context.Context, userID string) ([]*bookdomain.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []*bookdomain.Favorite
	for _, fav := range f.favs {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

// failCache errors on every operation, standing in for an unreachable Redis.
type failCache struct{}

var errCacheDown = errors.New("connection refused")

func (failCache) Get(context.Context, string) ([]byte, error) { return nil, errCacheDown }
func (failCache) Set(context.Context, string, []byte, time.Duration) error {
	return errCacheDown
}
func (failCache) Del(context.Context, ...string) error          { return errCacheDown }
func (failCache) Incr(context.Context, string) (int64, error)   { return 0, errCacheDown }
func (failCache) Ping(context.Context) error                    { return errCacheDown }
func (failCache) Close() error                                  { return nil }
