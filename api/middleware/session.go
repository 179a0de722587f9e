package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/musicstore/backend/api/responses"
	"github.com/musicstore/backend/pkg/config"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"github.com/musicstore/backend/pkg/logger"
)

// SessionStore is the slice of the Redis client the session middleware uses.
type SessionStore interface {
	GetCartID(ctx context.Context, token string) (string, bool, error)
	StoreCartID(ctx context.Context, token, cartID string, ttl time.Duration) error
}

// CartSession resolves the visitor's cart id from the session cookie,
// minting a new anonymous session and cart on first contact. The cart id
// lands in the request context; handlers never see the raw token.
func CartSession(cfg config.SessionConfig, store SessionStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			}
			if token == "" {
				token = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(cfg.TTL.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			cartID, found, err := store.GetCartID(ctx, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve session"))
				return
			}
			if !found {
				cartID = uuid.NewString()
				if err := store.StoreCartID(ctx, token, cartID, cfg.TTL); err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session"))
					return
				}
			}

			ctx = WithSessionToken(ctx, token)
			ctx = WithCartID(ctx, cartID)
			if logg != nil {
				ctx = logg.WithCartID(ctx, cartID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
