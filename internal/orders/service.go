package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/musicstore/backend/internal/cart"
	"github.com/musicstore/backend/internal/catalog"
	"github.com/musicstore/backend/pkg/db/models"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"github.com/musicstore/backend/pkg/types"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Receipt is the checkout confirmation returned to the visitor.
type Receipt struct {
	OrderID    uuid.UUID `json:"order_id"`
	TotalCents int       `json:"total_cents"`
	Total      string    `json:"total"`
	LineCount  int       `json:"line_count"`
}

// Service converts carts into orders.
type Service interface {
	PlaceOrder(ctx context.Context, cartID string) (*Receipt, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}

type service struct {
	repo    *Repository
	carts   *cart.Repository
	catalog *catalog.Repository
	tx      txRunner
}

// NewService builds the orders service.
func NewService(repo *Repository, carts *cart.Repository, catalogRepo *catalog.Repository, tx txRunner) (Service, error) {
	if repo == nil || carts == nil || catalogRepo == nil {
		return nil, fmt.Errorf("orders: repositories are required")
	}
	if tx == nil {
		return nil, fmt.Errorf("orders: tx runner is required")
	}
	return &service{repo: repo, carts: carts, catalog: catalogRepo, tx: tx}, nil
}

// PlaceOrder snapshots the cart into an order and empties the cart, all in a
// single transaction. Any failure along the way, including an album that has
// disappeared from the catalog, rolls the whole checkout back and leaves the
// cart untouched.
func (s *service) PlaceOrder(ctx context.Context, cartID string) (*Receipt, error) {
	if cartID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}

	var receipt *Receipt
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ordersRepo := s.repo.WithTx(tx)
		cartRepo := s.carts.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)

		items, err := cartRepo.Lines(ctx, cartID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		order := models.Order{ID: uuid.New()}
		details := make([]models.OrderDetail, 0, len(items))
		total := 0
		for _, item := range items {
			// Prices are re-read inside the transaction; whatever the album
			// row says now is what the order snapshots.
			album, err := catalogRepo.AlbumByID(ctx, item.AlbumID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "album no longer available").
						WithDetails(map[string]any{"album_id": item.AlbumID})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load album")
			}
			details = append(details, models.OrderDetail{
				OrderID:        order.ID,
				AlbumID:        album.ID,
				Quantity:       item.Quantity,
				UnitPriceCents: album.PriceCents,
			})
			total += item.Quantity * album.PriceCents
		}
		order.TotalCents = total

		if err := ordersRepo.CreateOrder(ctx, &order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := ordersRepo.CreateDetails(ctx, details); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order details")
		}
		if err := cartRepo.DeleteAll(ctx, cartID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "empty cart")
		}

		receipt = &Receipt{
			OrderID:    order.ID,
			TotalCents: total,
			Total:      types.Money(int64(total)),
			LineCount:  len(details),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetOrder loads an order with its details for the confirmation page.
func (s *service) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}
