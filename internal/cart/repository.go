package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/musicstore/backend/pkg/db/models"
	"gorm.io/gorm"
)

// cartLinesQuery loads a cart's lines joined with their albums. Lines come
// back in insertion order so the cart page is stable across reads.
const cartLinesQuery = `
SELECT c.id,
       c.cart_id,
       c.album_id,
       c.quantity,
       a.title AS album_title,
       a.price_cents AS album_price_cents,
       a.album_art_url AS album_art_url
FROM cart_items AS c
INNER JOIN albums AS a ON a.id = c.album_id
WHERE c.cart_id = ?
ORDER BY c.created_at ASC, c.id ASC
`

const cartTitlesQuery = `
SELECT a.title
FROM cart_items AS c
INNER JOIN albums AS a ON a.id = c.album_id
WHERE c.cart_id = ?
ORDER BY a.title ASC
`

const cartCountQuery = `
SELECT COALESCE(SUM(c.quantity), 0)
FROM cart_items AS c
WHERE c.cart_id = ?
`

const cartTotalQuery = `
SELECT COALESCE(SUM(c.quantity * a.price_cents), 0)
FROM cart_items AS c
INNER JOIN albums AS a ON a.id = c.album_id
WHERE c.cart_id = ?
`

type cartLineRow struct {
	ID              uuid.UUID
	CartID          string
	AlbumID         int64
	Quantity        int
	AlbumTitle      string
	AlbumPriceCents int
	AlbumArtURL     string
}

// Repository wires together cart line persistence.
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

// FindLines returns every line matching (cartID, albumID). Callers treat more
// than one row as corruption; the uniqueness guard lives in the store layer.
func (r *Repository) FindLines(ctx context.Context, cartID string, albumID int64) ([]models.CartItem, error) {
	var lines []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ? AND album_id = ?", cartID, albumID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindLineByID loads a single line scoped to the cart, with its album. A
// missing line returns (nil, nil) rather than an error.
func (r *Repository) FindLineByID(ctx context.Context, cartID string, lineID uuid.UUID) (*models.CartItem, error) {
	var line models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Album").
		First(&line, "id = ? AND cart_id = ?", lineID, cartID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

// Insert persists a new cart line, assigning its id when unset.
func (r *Repository) Insert(ctx context.Context, line *models.CartItem) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(line).Error
}

// UpdateQuantity sets the quantity on an existing line.
func (r *Repository) UpdateQuantity(ctx context.Context, lineID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", lineID).
		Update("quantity", quantity).Error
}

// DeleteLine removes a single cart line.
func (r *Repository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", lineID).Error
}

// DeleteAll removes every line in the cart in one statement.
func (r *Repository) DeleteAll(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID).Error
}

// Lines loads the cart's raw lines without album data, in insertion order.
// Checkout uses this instead of ListItems so a line whose album vanished from
// the catalog still surfaces rather than being dropped by the join.
func (r *Repository) Lines(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var lines []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ListItems loads the cart's lines with album data in insertion order.
func (r *Repository) ListItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var rows []cartLineRow
	if err := r.db.WithContext(ctx).Raw(cartLinesQuery, cartID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]models.CartItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.CartItem{
			ID:       row.ID,
			CartID:   row.CartID,
			AlbumID:  row.AlbumID,
			Quantity: row.Quantity,
			Album: &models.Album{
				ID:          row.AlbumID,
				Title:       row.AlbumTitle,
				PriceCents:  row.AlbumPriceCents,
				AlbumArtURL: row.AlbumArtURL,
			},
		})
	}
	return items, nil
}

// AlbumTitles returns the titles in the cart, alphabetically.
func (r *Repository) AlbumTitles(ctx context.Context, cartID string) ([]string, error) {
	var titles []string
	if err := r.db.WithContext(ctx).Raw(cartTitlesQuery, cartID).Scan(&titles).Error; err != nil {
		return nil, err
	}
	return titles, nil
}

// Count sums the quantities across the cart's lines.
func (r *Repository) Count(ctx context.Context, cartID string) (int, error) {
	var count int
	if err := r.db.WithContext(ctx).Raw(cartCountQuery, cartID).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Total sums quantity times current album price across the cart's lines.
func (r *Repository) Total(ctx context.Context, cartID string) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Raw(cartTotalQuery, cartID).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// AlbumExists reports whether the album id refers to a catalog row.
func (r *Repository) AlbumExists(ctx context.Context, albumID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM albums WHERE id = ?`, albumID).
		Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
