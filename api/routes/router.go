package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/musicstore/backend/api/controllers"
	"github.com/musicstore/backend/api/middleware"
	"github.com/musicstore/backend/internal/cart"
	"github.com/musicstore/backend/internal/catalog"
	"github.com/musicstore/backend/internal/orders"
	"github.com/musicstore/backend/pkg/config"
	"github.com/musicstore/backend/pkg/logger"
	"github.com/musicstore/backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          controllers.Pinger
	Sessions       middleware.SessionStore
	RequestMetrics *metrics.RequestMetrics
	Registry       *prometheus.Registry
	Catalog        catalog.Service
	CartStores     *cart.Stores
	Orders         orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.RequestMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/store", func(r chi.Router) {
		r.Get("/genres", controllers.StoreGenres(deps.Catalog, logg))
		r.Get("/genres/{name}", controllers.StoreBrowseGenre(deps.Catalog, logg))
		r.Get("/top-selling", controllers.StoreTopSelling(deps.Catalog, logg))
		r.Get("/albums/{albumId}", controllers.StoreAlbumDetails(deps.Catalog, logg))
	})

	session := middleware.CartSession(cfg.Session, deps.Sessions, logg)

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(session)
		r.Get("/", controllers.CartIndex(deps.CartStores, logg))
		r.Get("/summary", controllers.CartSummary(deps.CartStores, logg))
		r.Post("/items", controllers.CartAddItem(deps.CartStores, logg))
		r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.CartStores, logg))
		r.Delete("/", controllers.CartEmpty(deps.CartStores, logg))
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(session)
		r.Post("/", controllers.Checkout(deps.Orders, logg))
		r.Get("/orders/{orderId}", controllers.CheckoutConfirmation(deps.Orders, logg))
	})

	return r
}
