package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderDetail snapshots one purchased album. UnitPriceCents is captured at
// checkout and never re-read from the album afterwards, preserving the
// historical price.
type OrderDetail struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	AlbumID        int64     `gorm:"column:album_id;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	UnitPriceCents int       `gorm:"column:unit_price_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
