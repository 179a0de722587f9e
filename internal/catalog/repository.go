package catalog

import (
	"context"

	"github.com/musicstore/backend/pkg/db/models"
	"gorm.io/gorm"
)

// topSellingQuery ranks albums by lifetime units ordered, counted from
// historical order lines. Albums with equal sales fall back to id order so
// repeated reads return a stable list.
const topSellingQuery = `
SELECT a.id,
       a.genre_id,
       a.artist_id,
       a.title,
       a.price_cents,
       a.album_art_url,
       a.created_at
FROM albums AS a
ORDER BY (
  SELECT COUNT(*)
  FROM order_details AS o
  WHERE o.album_id = a.id
) DESC, a.id ASC
LIMIT ?
`

const albumDetailQuery = `
SELECT a.id,
       a.title,
       a.price_cents,
       a.album_art_url,
       ar.name AS artist,
       g.name AS genre
FROM albums AS a
INNER JOIN artists AS ar ON ar.id = a.artist_id
INNER JOIN genres AS g ON g.id = a.genre_id
WHERE a.id = ?
`

// Repository wires together the storefront's catalog read paths.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// GenreNames returns genre names for the navigation menu, capped at limit.
func (r *Repository) GenreNames(ctx context.Context, limit int) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Raw(`SELECT name FROM genres ORDER BY id ASC LIMIT ?`, limit).
		Scan(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// ListGenres loads every genre without associations.
func (r *Repository) ListGenres(ctx context.Context) ([]models.Genre, error) {
	var genres []models.Genre
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// GenreWithAlbums loads a genre by name together with its albums and their
// artists. Lookup is by exact name match.
func (r *Repository) GenreWithAlbums(ctx context.Context, name string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.WithContext(ctx).
		Preload("Albums", func(db *gorm.DB) *gorm.DB {
			return db.Order("albums.id ASC")
		}).
		Preload("Albums.Artist").
		First(&genre, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// TopSellingAlbums returns the best selling albums, capped at limit.
func (r *Repository) TopSellingAlbums(ctx context.Context, limit int) ([]models.Album, error) {
	var albums []models.Album
	if err := r.db.WithContext(ctx).Raw(topSellingQuery, limit).Scan(&albums).Error; err != nil {
		return nil, err
	}
	return albums, nil
}

// AlbumByID loads the album row without associations.
func (r *Repository) AlbumByID(ctx context.Context, id int64) (*models.Album, error) {
	var album models.Album
	if err := r.db.WithContext(ctx).First(&album, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

// AlbumDetail loads the flattened album projection served on the album page.
func (r *Repository) AlbumDetail(ctx context.Context, id int64) (*AlbumDetail, error) {
	var detail AlbumDetail
	res := r.db.WithContext(ctx).Raw(albumDetailQuery, id).Scan(&detail)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}
