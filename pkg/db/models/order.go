package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is created lazily at checkout; its total is the sum of its details.
type Order struct {
	ID         uuid.UUID     `gorm:"column:id;type:uuid;primaryKey"`
	TotalCents int           `gorm:"column:total_cents;not null"`
	Details    []OrderDetail `gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime"`
}
