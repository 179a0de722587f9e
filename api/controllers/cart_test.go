package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/musicstore/backend/api/middleware"
	cartsvc "github.com/musicstore/backend/internal/cart"
	"github.com/musicstore/backend/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func setupCartControllerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS albums (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  genre_id INTEGER NOT NULL,
  artist_id INTEGER NOT NULL,
  title TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  album_art_url TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  cart_id TEXT NOT NULL,
  album_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity >= 1),
  created_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	for _, table := range []string{"cart_items", "albums"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}
	return db
}

func cartTestRouter(t *testing.T, db *gorm.DB, cartID string) http.Handler {
	t.Helper()

	stores, err := cartsvc.NewStores(cartsvc.NewRepository(db), gormTxRunner{db: db})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(middleware.WithCartID(req.Context(), cartID)))
		})
	})
	r.Get("/cart", CartIndex(stores, nil))
	r.Get("/cart/summary", CartSummary(stores, nil))
	r.Post("/cart/items", CartAddItem(stores, nil))
	r.Delete("/cart/items/{itemId}", CartRemoveItem(stores, nil))
	r.Delete("/cart", CartEmpty(stores, nil))
	return r
}

func seedControllerAlbum(t *testing.T, db *gorm.DB, title string, priceCents int) int64 {
	t.Helper()
	require.NoError(t, db.Exec(
		`INSERT INTO albums (genre_id, artist_id, title, price_cents) VALUES (1, 1, ?, ?)`,
		title, priceCents,
	).Error)
	var id int64
	require.NoError(t, db.Raw(`SELECT id FROM albums WHERE title = ? ORDER BY id DESC LIMIT 1`, title).Scan(&id).Error)
	return id
}

func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	return data
}

func TestCartAddAndIndex(t *testing.T) {
	db := setupCartControllerDB(t)
	albumID := seedControllerAlbum(t, db, "Nevermind", 999)
	router := cartTestRouter(t, db, uuid.NewString())

	body := `{"album_id": ` + jsonInt(albumID) + `}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(1), decodeSuccess(t, rec)["count"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(2), decodeSuccess(t, rec)["count"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeSuccess(t, rec)
	items := data["items"].([]any)
	require.Len(t, items, 1, "same album must merge into one line")
	assert.Equal(t, float64(1998), data["total_cents"])
	assert.Equal(t, "19.98", data["total"])
}

func TestCartAddUnknownAlbum(t *testing.T) {
	db := setupCartControllerDB(t)
	router := cartTestRouter(t, db, uuid.NewString())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"album_id": 999999}`)))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)
}

func TestCartRemoveAbsentLineSucceeds(t *testing.T) {
	db := setupCartControllerDB(t)
	router := cartTestRouter(t, db, uuid.NewString())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart/items/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeSuccess(t, rec)
	assert.Equal(t, float64(0), data["count"])
	_, hasRemoved := data["removed"]
	assert.False(t, hasRemoved)
}

func TestCartSummaryAlphabeticalTitles(t *testing.T) {
	db := setupCartControllerDB(t)
	zep := seedControllerAlbum(t, db, "Zeppelin IV", 999)
	abbey := seedControllerAlbum(t, db, "Abbey Road", 499)
	router := cartTestRouter(t, db, uuid.NewString())

	for _, albumID := range []int64{zep, abbey} {
		rec := httptest.NewRecorder()
		body := `{"album_id": ` + jsonInt(albumID) + `}`
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeSuccess(t, rec)
	titles := data["titles"].([]any)
	require.Len(t, titles, 2)
	assert.Equal(t, "Abbey Road", titles[0])
	assert.Equal(t, "Zeppelin IV", titles[1])
}

func TestCartEmptyClearsLines(t *testing.T) {
	db := setupCartControllerDB(t)
	albumID := seedControllerAlbum(t, db, "Kid A", 999)
	router := cartTestRouter(t, db, uuid.NewString())

	rec := httptest.NewRecorder()
	body := `{"album_id": ` + jsonInt(albumID) + `}`
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/cart", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart/summary", nil))
	data := decodeSuccess(t, rec)
	assert.Equal(t, float64(0), data["count"])
}

func jsonInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
