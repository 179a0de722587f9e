package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/musicstore/backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository wires together order persistence.
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

// CreateOrder persists the order header, assigning its id when unset.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Omit("Details").Create(order).Error
}

// CreateDetails persists the order's line snapshots in one batch.
func (r *Repository) CreateDetails(ctx context.Context, details []models.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	for i := range details {
		if details[i].ID == uuid.Nil {
			details[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(&details).Error
}

// FindOrder loads the order with its details.
func (r *Repository) FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_details.created_at ASC, order_details.id ASC")
		}).
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
