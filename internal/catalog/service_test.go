package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/musicstore/backend/pkg/db/models"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubRepo struct {
	genreNames  []string
	genres      []models.Genre
	genre       *models.Genre
	genreErr    error
	topAlbums   []models.Album
	detail      *AlbumDetail
	detailErr   error
	detailCalls int
}

func (s *stubRepo) GenreNames(ctx context.Context, limit int) ([]string, error) {
	if len(s.genreNames) > limit {
		return s.genreNames[:limit], nil
	}
	return s.genreNames, nil
}

func (s *stubRepo) ListGenres(ctx context.Context) ([]models.Genre, error) {
	return s.genres, nil
}

func (s *stubRepo) GenreWithAlbums(ctx context.Context, name string) (*models.Genre, error) {
	if s.genreErr != nil {
		return nil, s.genreErr
	}
	return s.genre, nil
}

func (s *stubRepo) TopSellingAlbums(ctx context.Context, limit int) ([]models.Album, error) {
	if len(s.topAlbums) > limit {
		return s.topAlbums[:limit], nil
	}
	return s.topAlbums, nil
}

func (s *stubRepo) AlbumDetail(ctx context.Context, id int64) (*AlbumDetail, error) {
	s.detailCalls++
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

type stubCache struct {
	entries  map[string]string
	getCalls int
	setCalls int
	lastTTL  time.Duration
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]string{}}
}

func (s *stubCache) CacheKey(name string) string { return "ms:cache:" + name }

func (s *stubCache) GetSliding(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	s.getCalls++
	s.lastTTL = ttl
	val, ok := s.entries[key]
	return val, ok, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	s.setCalls++
	s.lastTTL = ttl
	switch v := value.(type) {
	case []byte:
		s.entries[key] = string(v)
	case string:
		s.entries[key] = v
	}
	return nil
}

func testOptions() Options {
	return Options{GenreMenuLimit: 9, TopSellerLimit: 6, AlbumDetailTTL: 10 * time.Minute}
}

func TestGenreMenuCapsAtLimit(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{}
	for i := 0; i < 12; i++ {
		repo.genreNames = append(repo.genreNames, "Genre")
	}
	svc := NewService(repo, newStubCache(), testOptions())

	names, err := svc.GenreMenu(context.Background())
	require.NoError(t, err)
	assert.Len(t, names, 9)
}

func TestBrowseGenreMissingGenre(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{genreErr: gorm.ErrRecordNotFound}
	svc := NewService(repo, newStubCache(), testOptions())

	_, err := svc.BrowseGenre(context.Background(), "Nope")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestGetAlbumDetailsCachesAfterFirstRead(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{detail: &AlbumDetail{
		ID: 42, Title: "Nevermind", Artist: "Nirvana", Genre: "Rock", PriceCents: 999,
	}}
	cache := newStubCache()
	svc := NewService(repo, cache, testOptions())

	first, err := svc.GetAlbumDetails(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Nevermind", first.Title)
	assert.Equal(t, 1, repo.detailCalls)
	assert.Equal(t, 1, cache.setCalls)

	second, err := svc.GetAlbumDetails(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, repo.detailCalls, "cache hit should not touch the database")
	assert.Equal(t, 10*time.Minute, cache.lastTTL, "cache read should carry the sliding TTL")
}

func TestGetAlbumDetailsServesCachedPayload(t *testing.T) {
	t.Parallel()

	cached := AlbumDetail{ID: 7, Title: "Cached Album", Artist: "Someone", Genre: "Pop", PriceCents: 499}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	cache := newStubCache()
	cache.entries["ms:cache:album_7"] = string(payload)

	repo := &stubRepo{detailErr: gorm.ErrRecordNotFound}
	svc := NewService(repo, cache, testOptions())

	detail, err := svc.GetAlbumDetails(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Cached Album", detail.Title)
	assert.Zero(t, repo.detailCalls)
}

func TestGetAlbumDetailsMissingAlbum(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{detailErr: gorm.ErrRecordNotFound}
	svc := NewService(repo, newStubCache(), testOptions())

	_, err := svc.GetAlbumDetails(context.Background(), 404)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
