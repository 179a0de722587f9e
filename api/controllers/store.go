package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/musicstore/backend/api/responses"
	"github.com/musicstore/backend/internal/catalog"
	pkgerrors "github.com/musicstore/backend/pkg/errors"
	"github.com/musicstore/backend/pkg/logger"
)

// StoreGenres serves the genre navigation menu.
func StoreGenres(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := svc.GenreMenu(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"genres": names})
	}
}

// StoreBrowseGenre serves a genre page with its albums.
func StoreBrowseGenre(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "genre name is required"))
			return
		}

		page, err := svc.BrowseGenre(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// StoreTopSelling serves the home page's best seller strip.
func StoreTopSelling(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		albums, err := svc.TopSellers(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"albums": albums})
	}
}

// StoreAlbumDetails serves the album page, cache-first.
func StoreAlbumDetails(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		albumID, err := strconv.ParseInt(chi.URLParam(r, "albumId"), 10, 64)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid album id"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithAlbumID(ctx, albumID)
		}

		detail, err := svc.GetAlbumDetails(ctx, albumID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"id":            detail.ID,
			"title":         detail.Title,
			"artist":        detail.Artist,
			"genre":         detail.Genre,
			"price_cents":   detail.PriceCents,
			"price":         detail.Price(),
			"album_art_url": detail.AlbumArtURL,
		})
	}
}
