package models

import "time"

// Album is the immutable catalog listing. Prices are integer cents; rows are
// created and updated only by catalog management, never by the storefront.
type Album struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	GenreID     int64     `gorm:"column:genre_id;not null;index"`
	ArtistID    int64     `gorm:"column:artist_id;not null;index"`
	Title       string    `gorm:"column:title;not null"`
	PriceCents  int       `gorm:"column:price_cents;not null"`
	AlbumArtURL string    `gorm:"column:album_art_url;not null;default:''"`
	Genre       *Genre    `gorm:"foreignKey:GenreID"`
	Artist      *Artist   `gorm:"foreignKey:ArtistID"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
