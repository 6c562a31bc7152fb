package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"testing"
	"time"

	authdomain "bookworm-backend/internal/auth/domain"
	authUsecasePkg "bookworm-backend/internal/auth/usecase"
	bookdomain "bookworm-backend/internal/book/domain"
	bookUsecasePkg "bookworm-backend/internal/book/usecase"
	"bookworm-backend/pkg/blobstore"
	"bookworm-backend/pkg/cache"
	"bookworm-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory collaborators so the full HTTP surface runs without Postgres,
// Redis, or Cloudinary.

type memUserRepo struct {
	users map[string]*authdomain.User
	seq   int
}

func (m *memUserRepo) Create(_ context.Context, u *authdomain.User) error {
	m.seq++
	u.ID = "user-" + strconv.Itoa(m.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByUsername(_ context.Context, username string) (*authdomain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	return m.users[id], nil
}

type memBookRepo struct {
	books []*bookdomain.Book
	favs  *memFavoriteRepo
	seq   int
}

func (m *memBookRepo) Create(_ context.Context, b *bookdomain.Book) error {
	m.seq++
	b.ID = "book-" + strconv.Itoa(m.seq)
	b.CreatedAt = time.Unix(int64(m.seq), 0)
	m.books = append(m.books, b)
	return nil
}

func (m *memBookRepo) FindByID(_ context.Context, id string) (*bookdomain.Book, error) {
	for _, b := range m.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (m *memBookRepo) owned(userID string) []*bookdomain.Book {
	var out []*bookdomain.Book
	for _, b := range m.books {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memBookRepo) FindByUserID(_ context.Context, userID string, limit, offset int) ([]*bookdomain.Book, int64, error) {
	owned := m.owned(userID)
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

func (m *memBookRepo) FindAllByUserID(_ context.Context, userID string) ([]*bookdomain.Book, error) {
	return m.owned(userID), nil
}

func (m *memBookRepo) Delete(_ context.Context, id string) error {
	for i, b := range m.books {
		if b.ID == id {
			m.books = append(m.books[:i], m.books[i+1:]...)
			break
		}
	}
	m.favs.dropBook(id)
	return nil
}

type memFavoriteRepo struct {
	favs []*bookdomain.Favorite
	seq  int
}

func (m *memFavoriteRepo) dropBook(bookID string) {
	var kept []*bookdomain.Favorite
	for _, f := range m.favs {
		if f.BookID != bookID {
			kept = append(kept, f)
		}
	}
	m.favs = kept
}

func (m *memFavoriteRepo) Create(_ context.Context, f *bookdomain.Favorite) error {
	m.seq++
	f.ID = "fav-" + strconv.Itoa(m.seq)
	f.CreatedAt = time.Now()
	m.favs = append(m.favs, f)
	return nil
}

func (m *memFavoriteRepo) Find(_ context.Context, userID, bookID string) (*bookdomain.Favorite, error) {
	for _, f := range m.favs {
		if f.UserID == userID && f.BookID == bookID {
			return f, nil
		}
	}
	return nil, nil
}

func (m *memFavoriteRepo) Delete(_ context.Context, userID, bookID string) (bool, error) {
	for i, f := range m.favs {
		if f.UserID == userID && f.BookID == bookID {
			m.favs = append(m.favs[:i], m.favs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memFavoriteRepo) FindByUserID(_ context.Context, userID string) ([]*bookdomain.Favorite, error) {
	var out []*bookdomain.Favorite
	for _, f := range m.favs {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

type memBlobStore struct{ seq int }

func (m *memBlobStore) Upload(context.Context, string) (*blobstore.UploadResult, error) {
	m.seq++
	id := "books/img-" + strconv.Itoa(m.seq)
	return &blobstore.UploadResult{URL: "https://cdn.example.com/" + id + ".jpg", PublicID: id}, nil
}

func (m *memBlobStore) Destroy(context.Context, string) error { return nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, CacheTTL: time.Hour}
	mem := cache.NewMemory()

	favRepo := &memFavoriteRepo{}
	bookRepo := &memBookRepo{favs: favRepo}
	userRepo := &memUserRepo{users: make(map[string]*authdomain.User)}

	authUc := authUsecasePkg.NewAuthUsecase(userRepo, cfg)
	bookUc := bookUsecasePkg.NewBookUsecase(bookRepo, &memBlobStore{}, mem, cfg.CacheTTL)
	favUc := bookUsecasePkg.NewFavoriteUsecase(favRepo, bookRepo, mem, cfg.CacheTTL)

	r := gin.New()
	SetupRoutes(r, authUc, bookUc, favUc)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func registerUser(t *testing.T, r *gin.Engine, username, email string) (token, userID string) {
	t.Helper()
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	token = resp["token"].(string)
	userID = resp["user"].(map[string]interface{})["id"].(string)
	return token, userID
}

func TestHealth(t *testing.T) {
	r := newTestRouter()
	w, resp := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

func TestBooksRequireAuth(t *testing.T) {
	r := newTestRouter()
	w, _ := doJSON(t, r, http.MethodGet, "/api/books", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFullScenario(t *testing.T) {
	r := newTestRouter()

	// Register alice.
	aliceToken, aliceID := registerUser(t, r, "alice", "alice@x.com")

	// Duplicate registration fails, no token issued.
	w, resp := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice", "email": "alice2@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.NotContains(t, resp, "token")

	// Login with the same credentials.
	w, resp = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["token"])

	// Create a book with alice's token.
	w, resp = doJSON(t, r, http.MethodPost, "/api/books", aliceToken, gin.H{
		"title": "T", "caption": "C", "rating": 5, "image": "data:image/jpeg;base64,Zm9v",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	book := resp["book"].(map[string]interface{})
	assert.Equal(t, aliceID, book["user"])
	bookID := book["id"].(string)

	// The book shows up in alice's paginated list.
	w, resp = doJSON(t, r, http.MethodGet, "/api/books?page=1&limit=5", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), resp["totalBooks"])

	// Bob cannot delete alice's book.
	bobToken, _ := registerUser(t, r, "bobby", "bob@x.com")
	w, _ = doJSON(t, r, http.MethodDelete, "/api/books/"+bookID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Alice deletes it; the warm cached page must not resurface it.
	w, _ = doJSON(t, r, http.MethodDelete, "/api/books/"+bookID, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/api/books?page=1&limit=5", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), resp["totalBooks"])

	// Favoriting the now-deleted book id is a 404.
	w, _ = doJSON(t, r, http.MethodPost, "/api/books/favorites", bobToken, gin.H{"bookId": bookID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoritesFlow(t *testing.T) {
	r := newTestRouter()

	aliceToken, _ := registerUser(t, r, "alice", "alice@x.com")
	bobToken, _ := registerUser(t, r, "bobby", "bob@x.com")

	w, resp := doJSON(t, r, http.MethodPost, "/api/books", aliceToken, gin.H{
		"title": "Dune", "caption": "Spice", "rating": 4, "image": "data:image/jpeg;base64,Zm9v",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	bookID := resp["book"].(map[string]interface{})["id"].(string)

	// Bob favorites alice's book.
	w, _ = doJSON(t, r, http.MethodPost, "/api/books/favorites", bobToken, gin.H{"bookId": bookID})
	require.Equal(t, http.StatusCreated, w.Code)

	// A second add conflicts.
	w, _ = doJSON(t, r, http.MethodPost, "/api/books/favorites", bobToken, gin.H{"bookId": bookID})
	assert.Equal(t, http.StatusConflict, w.Code)

	// It appears in bob's list with the book embedded.
	w, resp = doJSON(t, r, http.MethodGet, "/api/books/favorites", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	favorites := resp["favorites"].([]interface{})
	require.Len(t, favorites, 1)
	embedded := favorites[0].(map[string]interface{})["book"].(map[string]interface{})
	assert.Equal(t, "Dune", embedded["title"])

	// Remove, then removing again is a 404.
	w, _ = doJSON(t, r, http.MethodDelete, "/api/books/favorites/"+bookID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/api/books/favorites/"+bookID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// And bob's list is empty again.
	w, resp = doJSON(t, r, http.MethodGet, "/api/books/favorites", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["favorites"])
}

func TestPaginationAcrossPages(t *testing.T) {
	r := newTestRouter()
	token, _ := registerUser(t, r, "alice", "alice@x.com")

	for i := 1; i <= 12; i++ {
		w, _ := doJSON(t, r, http.MethodPost, "/api/books", token, gin.H{
			"title": "book " + strconv.Itoa(i), "caption": "c", "rating": 3, "image": "data:image/jpeg;base64,Zm9v",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, resp := doJSON(t, r, http.MethodGet, "/api/books?page=2&limit=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, float64(12), resp["totalBooks"])
	assert.Equal(t, float64(3), resp["totalPages"])
	books := resp["books"].([]interface{})
	require.Len(t, books, 5)
	assert.Equal(t, "book 7", books[0].(map[string]interface{})["title"])
}
