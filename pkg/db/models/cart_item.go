package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of a visitor's cart. The cart itself is not a table:
// it is the set of rows sharing a cart_id. Quantity is >= 1 for as long as the
// row exists; a would-be quantity of zero deletes the row instead.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID    string    `gorm:"column:cart_id;not null;index"`
	AlbumID   int64     `gorm:"column:album_id;not null"`
	Quantity  int       `gorm:"column:quantity;not null"`
	Album     *Album    `gorm:"foreignKey:AlbumID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
