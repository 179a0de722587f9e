package catalog

import "github.com/musicstore/backend/pkg/types"

// AlbumDetail is the flattened album page projection. It is also the payload
// cached in Redis, so the JSON shape doubles as the cache encoding.
type AlbumDetail struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Genre       string `json:"genre"`
	PriceCents  int    `json:"price_cents"`
	AlbumArtURL string `json:"album_art_url"`
}

// Price renders the album price as a display string.
func (d *AlbumDetail) Price() string {
	return types.Money(int64(d.PriceCents))
}

// AlbumSummary is the card shape used by genre browse and top seller lists.
type AlbumSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist,omitempty"`
	PriceCents  int    `json:"price_cents"`
	Price       string `json:"price"`
	AlbumArtURL string `json:"album_art_url"`
}

// GenrePage is the browse response for a single genre.
type GenrePage struct {
	Genre       string         `json:"genre"`
	Description string         `json:"description,omitempty"`
	Albums      []AlbumSummary `json:"albums"`
}
