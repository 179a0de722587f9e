package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/musicstore/backend/api/middleware"
	"github.com/musicstore/backend/api/responses"
	ordersvc "github.com/musicstore/backend/internal/orders"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"github.com/musicstore/backend/pkg/logger"
	"github.com/musicstore/backend/pkg/types"
)

// Checkout converts the visitor's cart into an order.
func Checkout(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cartID := middleware.CartIDFromContext(r.Context())
		if cartID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}

		receipt, err := svc.PlaceOrder(r.Context(), cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// CheckoutConfirmation serves a placed order for the confirmation page.
func CheckoutConfirmation(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		order, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := make([]map[string]any, 0, len(order.Details))
		for _, detail := range order.Details {
			lines = append(lines, map[string]any{
				"album_id":         detail.AlbumID,
				"quantity":         detail.Quantity,
				"unit_price_cents": detail.UnitPriceCents,
				"unit_price":       types.Money(int64(detail.UnitPriceCents)),
			})
		}
		responses.WriteSuccess(w, map[string]any{
			"order_id":    order.ID,
			"total_cents": order.TotalCents,
			"total":       types.Money(int64(order.TotalCents)),
			"lines":       lines,
		})
	}
}
