package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/musicstore/backend/pkg/db/models"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RemovedLine summarizes the outcome of a remove operation for the UI's
// confirmation message.
type RemovedLine struct {
	LineID            uuid.UUID `json:"line_id"`
	AlbumTitle        string    `json:"album_title"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Deleted           bool      `json:"deleted"`
}

// Stores hands out per-cart views over shared persistence.
type Stores struct {
	repo *Repository
	tx   txRunner
}

// NewStores builds the cart store factory.
func NewStores(repo *Repository, tx txRunner) (*Stores, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart: repository is required")
	}
	if tx == nil {
		return nil, fmt.Errorf("cart: tx runner is required")
	}
	return &Stores{repo: repo, tx: tx}, nil
}

// ForCart binds a store to one cart id.
func (f *Stores) ForCart(cartID string) (*Store, error) {
	if cartID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	return &Store{cartID: cartID, repo: f.repo, tx: f.tx}, nil
}

// Store is a view of one visitor's cart. All operations are scoped to its
// cart id; no call can observe or mutate another cart.
type Store struct {
	cartID string
	repo   *Repository
	tx     txRunner
}

// CartID returns the id the store is bound to.
func (s *Store) CartID() string { return s.cartID }

// AddToCart adds one unit of the album, merging into the existing line when
// the album is already in the cart. Finding more than one line for the album
// means the uniqueness invariant is already broken, so the call fails loudly
// instead of guessing which line to grow.
func (s *Store) AddToCart(ctx context.Context, albumID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		exists, err := txRepo.AlbumExists(ctx, albumID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check album")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "album not found")
		}

		lines, err := txRepo.FindLines(ctx, s.cartID, albumID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart lines")
		}

		switch len(lines) {
		case 0:
			line := &models.CartItem{CartID: s.cartID, AlbumID: albumID, Quantity: 1}
			if err := txRepo.Insert(ctx, line); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert cart line")
			}
			return nil
		case 1:
			if err := txRepo.UpdateQuantity(ctx, lines[0].ID, lines[0].Quantity+1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart line")
			}
			return nil
		default:
			return pkgerrors.New(pkgerrors.CodeIntegrity, "duplicate cart lines for album").
				WithDetails(map[string]any{"album_id": albumID, "lines": len(lines)})
		}
	})
}

// RemoveFromCart removes one unit of the line. Quantities above one are
// decremented; a quantity of one deletes the row. Removing a line that does
// not exist in this cart is a no-op and returns (nil, nil).
func (s *Store) RemoveFromCart(ctx context.Context, lineID uuid.UUID) (*RemovedLine, error) {
	var removed *RemovedLine
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		line, err := txRepo.FindLineByID(ctx, s.cartID, lineID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}
		if line == nil {
			return nil
		}

		result := RemovedLine{LineID: line.ID}
		if line.Album != nil {
			result.AlbumTitle = line.Album.Title
		}

		if line.Quantity > 1 {
			result.RemainingQuantity = line.Quantity - 1
			if err := txRepo.UpdateQuantity(ctx, line.ID, line.Quantity-1); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement cart line")
			}
		} else {
			result.Deleted = true
			if err := txRepo.DeleteLine(ctx, line.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
			}
		}
		removed = &result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// EmptyCart removes every line in one batch statement.
func (s *Store) EmptyCart(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx, s.cartID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "empty cart")
	}
	return nil
}

// GetCartItems lists the cart's lines with album data in insertion order.
func (s *Store) GetCartItems(ctx context.Context) ([]models.CartItem, error) {
	items, err := s.repo.ListItems(ctx, s.cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	return items, nil
}

// GetCartAlbumTitles lists the titles in the cart alphabetically.
func (s *Store) GetCartAlbumTitles(ctx context.Context) ([]string, error) {
	titles, err := s.repo.AlbumTitles(ctx, s.cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart titles")
	}
	return titles, nil
}

// GetCount sums quantities across the cart. Empty carts report zero.
func (s *Store) GetCount(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx, s.cartID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count cart")
	}
	return count, nil
}

// GetTotal sums quantity times current album price across the cart, in cents.
func (s *Store) GetTotal(ctx context.Context) (int64, error) {
	total, err := s.repo.Total(ctx, s.cartID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "total cart")
	}
	return total, nil
}
