package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bookstore-catalog/internal/config"
	"bookstore-catalog/internal/shared/middleware"
	"bookstore-catalog/pkg/container"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := container.NewWithConfig(&config.Config{
		App:      config.AppConfig{Name: "test", Environment: config.EnvDevelopment, Port: "0", Version: "test-1"},
		Store:    config.StoreConfig{Driver: config.DriverMemory},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)
	return SetupRouter(c)
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error envelope: %s", w.Body.String())
	return e["code"].(string)
}

func create(t *testing.T, r http.Handler, path string, body any) string {
	t.Helper()
	w := do(t, r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["id"].(string)
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["store"])
	assert.Equal(t, "test-1", body["version"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_EntityLifecycle(t *testing.T) {
	r := newTestRouter(t)

	id := create(t, r, "/api/v1/categories", map[string]any{"name": "Poetry", "description": "Verse"})

	w := do(t, r, http.MethodGet, "/api/v1/categories/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Poetry", decode(t, w)["name"])

	w = do(t, r, http.MethodGet, "/api/v1/categories/base/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"id": id, "name": "Poetry"}, decode(t, w))

	w = do(t, r, http.MethodPut, "/api/v1/categories/"+id, map[string]any{"description": "Rhymes"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Poetry", body["name"])
	assert.Equal(t, "Rhymes", body["description"])

	w = do(t, r, http.MethodGet, "/api/v1/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = do(t, r, http.MethodDelete, "/api/v1/categories/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/categories/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestRouter_ErrorStatuses(t *testing.T) {
	r := newTestRouter(t)
	create(t, r, "/api/v1/authors", map[string]any{"name": "Mark Twain", "age": 74, "gender": "Male"})

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"duplicate name", http.MethodPost, "/api/v1/authors", map[string]any{"name": "Mark Twain", "age": 30, "gender": "Male"}, http.StatusConflict, "CONFLICT"},
		{"malformed id", http.MethodGet, "/api/v1/authors/not-a-uuid", nil, http.StatusBadRequest, "INVALID_ID"},
		{"malformed id on delete", http.MethodDelete, "/api/v1/books/42", nil, http.StatusBadRequest, "INVALID_ID"},
		{"absent record", http.MethodGet, "/api/v1/users/6f1c1e9e-3c7a-4b8e-9a53-5d0f6c2d9b11", nil, http.StatusNotFound, "NOT_FOUND"},
		{"failed validation", http.MethodPost, "/api/v1/reviews", map[string]any{"content": "meh", "rating": 9}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown search entity", http.MethodGet, "/api/v1/search/spaceships?q=x", nil, http.StatusNotFound, "NOT_FOUND"},
		{"blank search query", http.MethodGet, "/api/v1/search/books", nil, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown route", http.MethodGet, "/api/v1/nothing", nil, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.code, errorCode(t, w))
		})
	}
}

func TestRouter_BooksAndSearch(t *testing.T) {
	r := newTestRouter(t)
	authorID := create(t, r, "/api/v1/authors", map[string]any{"name": "J. K. Rowling", "age": 58, "gender": "Female"})
	categoryID := create(t, r, "/api/v1/categories", map[string]any{"name": "Fantasy", "description": "Magic"})
	bookID := create(t, r, "/api/v1/books", map[string]any{
		"name": "Harry Potter", "description": "Wizards", "author_id": authorID, "category_id": categoryID,
	})

	w := do(t, r, http.MethodGet, "/api/v1/books/"+bookID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	book := decode(t, w)
	assert.Equal(t, false, book["is_published"])
	assert.NotContains(t, book, "publisher")
	assert.Nil(t, book["average_rating"])
	assert.Equal(t, float64(0), book["total_reviews"])

	w = do(t, r, http.MethodGet, "/api/v1/search/books?q=harry", nil)
	require.Equal(t, http.StatusOK, w.Code)
	results := decode(t, w)["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, bookID, results[0].(map[string]any)["id"])

	w = do(t, r, http.MethodGet, "/api/v1/books/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "books.xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestRouter_BookstoreMembership(t *testing.T) {
	r := newTestRouter(t)
	authorID := create(t, r, "/api/v1/authors", map[string]any{"name": "Author", "age": 40, "gender": "Female"})
	categoryID := create(t, r, "/api/v1/categories", map[string]any{"name": "Drama", "description": "Plays"})
	bookID := create(t, r, "/api/v1/books", map[string]any{
		"name": "Hamlet", "description": "Prince", "author_id": authorID, "category_id": categoryID,
	})
	shopID := create(t, r, "/api/v1/bookstores", map[string]any{"name": "Globe Books", "location": "London"})

	path := "/api/v1/bookstores/" + shopID + "/books/" + bookID
	for i := 0; i < 2; i++ {
		w := do(t, r, http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["books"], 1)
	}

	w := do(t, r, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["books"])

	w = do(t, r, http.MethodPost, "/api/v1/bookstores/"+shopID+"/books/oops", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
