package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/musicstore/backend/pkg/db/models"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"github.com/musicstore/backend/pkg/types"
	"gorm.io/gorm"
)

// Service exposes the storefront catalog read paths.
type Service interface {
	GenreMenu(ctx context.Context) ([]string, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	BrowseGenre(ctx context.Context, name string) (*GenrePage, error)
	TopSellers(ctx context.Context) ([]AlbumSummary, error)
	GetAlbumDetails(ctx context.Context, albumID int64) (*AlbumDetail, error)
}

// DetailCache is the slice of the Redis client the album page uses. Reads
// refresh the entry's TTL so frequently viewed albums stay warm.
type DetailCache interface {
	CacheKey(name string) string
	GetSliding(ctx context.Context, key string, ttl time.Duration) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type repository interface {
	GenreNames(ctx context.Context, limit int) ([]string, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	GenreWithAlbums(ctx context.Context, name string) (*models.Genre, error)
	TopSellingAlbums(ctx context.Context, limit int) ([]models.Album, error)
	AlbumDetail(ctx context.Context, id int64) (*AlbumDetail, error)
}

// Options carries the catalog display caps and cache policy.
type Options struct {
	GenreMenuLimit int
	TopSellerLimit int
	AlbumDetailTTL time.Duration
}

type service struct {
	repo  repository
	cache DetailCache
	opts  Options
}

// NewService builds the catalog service.
func NewService(repo repository, cache DetailCache, opts Options) Service {
	return &service{repo: repo, cache: cache, opts: opts}
}

func (s *service) GenreMenu(ctx context.Context) ([]string, error) {
	names, err := s.repo.GenreNames(ctx, s.opts.GenreMenuLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load genre menu")
	}
	return names, nil
}

func (s *service) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.repo.ListGenres(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list genres")
	}
	return genres, nil
}

func (s *service) BrowseGenre(ctx context.Context, name string) (*GenrePage, error) {
	genre, err := s.repo.GenreWithAlbums(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "genre not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "browse genre")
	}

	page := GenrePage{Genre: genre.Name, Albums: make([]AlbumSummary, 0, len(genre.Albums))}
	if genre.Description != nil {
		page.Description = *genre.Description
	}
	for _, album := range genre.Albums {
		page.Albums = append(page.Albums, summarize(album))
	}
	return &page, nil
}

func (s *service) TopSellers(ctx context.Context) ([]AlbumSummary, error) {
	albums, err := s.repo.TopSellingAlbums(ctx, s.opts.TopSellerLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load top sellers")
	}
	summaries := make([]AlbumSummary, 0, len(albums))
	for _, album := range albums {
		summaries = append(summaries, summarize(album))
	}
	return summaries, nil
}

// GetAlbumDetails serves the album page, preferring the Redis cache. Cache
// failures degrade to a database read rather than failing the page.
func (s *service) GetAlbumDetails(ctx context.Context, albumID int64) (*AlbumDetail, error) {
	key := s.cache.CacheKey(fmt.Sprintf("album_%d", albumID))

	if raw, found, err := s.cache.GetSliding(ctx, key, s.opts.AlbumDetailTTL); err == nil && found {
		var detail AlbumDetail
		if err := json.Unmarshal([]byte(raw), &detail); err == nil {
			return &detail, nil
		}
	}

	detail, err := s.repo.AlbumDetail(ctx, albumID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "album not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load album details")
	}

	if payload, err := json.Marshal(detail); err == nil {
		// Best effort: a cache write failure should not fail the page.
		_ = s.cache.Set(ctx, key, payload, s.opts.AlbumDetailTTL)
	}
	return detail, nil
}

func summarize(album models.Album) AlbumSummary {
	summary := AlbumSummary{
		ID:          album.ID,
		Title:       album.Title,
		PriceCents:  album.PriceCents,
		Price:       types.Money(int64(album.PriceCents)),
		AlbumArtURL: album.AlbumArtURL,
	}
	if album.Artist != nil {
		summary.Artist = album.Artist.Name
	}
	return summary
}
