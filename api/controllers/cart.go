package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/musicstore/backend/api/middleware"
	"github.com/musicstore/backend/api/responses"
	"github.com/musicstore/backend/api/validators"
	cartsvc "github.com/musicstore/backend/internal/cart"
	"github.com/musicstore/backend/pkg/db/models"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"github.com/musicstore/backend/pkg/logger"
	"github.com/musicstore/backend/pkg/types"
)

type cartLineResponse struct {
	ID          uuid.UUID `json:"id"`
	AlbumID     int64     `json:"album_id"`
	Title       string    `json:"title"`
	Quantity    int       `json:"quantity"`
	PriceCents  int       `json:"price_cents"`
	Price       string    `json:"price"`
	AlbumArtURL string    `json:"album_art_url"`
}

type addToCartRequest struct {
	AlbumID int64 `json:"album_id" validate:"required,min=1"`
}

func cartStoreFromRequest(stores *cartsvc.Stores, r *http.Request) (*cartsvc.Store, error) {
	cartID := middleware.CartIDFromContext(r.Context())
	if cartID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return stores.ForCart(cartID)
}

func newCartLineResponses(items []models.CartItem) []cartLineResponse {
	lines := make([]cartLineResponse, 0, len(items))
	for _, item := range items {
		line := cartLineResponse{
			ID:       item.ID,
			AlbumID:  item.AlbumID,
			Quantity: item.Quantity,
		}
		if item.Album != nil {
			line.Title = item.Album.Title
			line.PriceCents = item.Album.PriceCents
			line.Price = types.Money(int64(item.Album.PriceCents))
			line.AlbumArtURL = item.Album.AlbumArtURL
		}
		lines = append(lines, line)
	}
	return lines
}

// CartIndex serves the visitor's cart page: lines plus running totals.
func CartIndex(stores *cartsvc.Stores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartStoreFromRequest(stores, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := store.GetCartItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		count, err := store.GetCount(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := store.GetTotal(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"items":       newCartLineResponses(items),
			"count":       count,
			"total_cents": total,
			"total":       types.Money(total),
		})
	}
}

// CartSummary serves the header widget: item count and alphabetical titles.
func CartSummary(stores *cartsvc.Stores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartStoreFromRequest(stores, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := store.GetCount(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		total, err := store.GetTotal(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		titles, err := store.GetCartAlbumTitles(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"count":       count,
			"total_cents": total,
			"total":       types.Money(total),
			"titles":      titles,
		})
	}
}

// CartAddItem adds one unit of an album to the cart.
func CartAddItem(stores *cartsvc.Stores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartStoreFromRequest(stores, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addToCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.AddToCart(r.Context(), payload.AlbumID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := store.GetCount(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"album_id": payload.AlbumID,
			"count":    count,
		})
	}
}

// CartRemoveItem removes one unit of a cart line. Removing a line that is
// not in the cart succeeds without changing anything.
func CartRemoveItem(stores *cartsvc.Stores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartStoreFromRequest(stores, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID, err := uuid.Parse(chi.URLParam(r, "itemId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart item id"))
			return
		}

		removed, err := store.RemoveFromCart(r.Context(), lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := store.GetCount(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload := map[string]any{"count": count}
		if removed != nil {
			payload["removed"] = removed
		}
		responses.WriteSuccess(w, payload)
	}
}

// CartEmpty discards every line in the cart.
func CartEmpty(stores *cartsvc.Stores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartStoreFromRequest(stores, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.EmptyCart(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"count": 0})
	}
}
