package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcosovalle/shopfront-backend/api/controllers"
	"github.com/marcosovalle/shopfront-backend/api/middleware"
	"github.com/marcosovalle/shopfront-backend/internal/authctx"
	"github.com/marcosovalle/shopfront-backend/internal/catalog"
	"github.com/marcosovalle/shopfront-backend/internal/collections"
	"github.com/marcosovalle/shopfront-backend/internal/prefs"
	"github.com/marcosovalle/shopfront-backend/internal/upstream"
	"github.com/marcosovalle/shopfront-backend/pkg/config"
	"github.com/marcosovalle/shopfront-backend/pkg/kv"
	"github.com/marcosovalle/shopfront-backend/pkg/logger"
	"github.com/marcosovalle/shopfront-backend/pkg/metrics"
	"github.com/marcosovalle/shopfront-backend/pkg/session"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Store          kv.Store
	Counter        kv.Counter
	SessionManager *session.Manager
	HTTPMetrics    *metrics.HTTPMetrics
	Registry       prometheus.Gatherer

	Cart     collections.Cart
	Wishlist collections.Wishlist
	Recent   collections.RecentlyViewed

	Catalog  catalog.Service
	Auth     authctx.Service
	Prefs    prefs.Service
	Upstream *upstream.Client
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	cfg := d.Config
	logg := d.Logger

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Store))
	})

	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	loginPolicy := middleware.NewRateLimitPolicy(
		"login",
		cfg.AuthLimit.LoginWindow,
		cfg.AuthLimit.LoginLimit,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SessionContext(d.SessionManager, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.Cart, logg))
			r.Delete("/", controllers.CartClear(d.Cart, logg))
			r.Post("/items", controllers.CartAdd(d.Cart, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(d.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(d.Cart, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(d.Wishlist, logg))
			r.Delete("/", controllers.WishlistClear(d.Wishlist, logg))
			r.Post("/items", controllers.WishlistAdd(d.Wishlist, logg))
			r.Get("/items/{productId}", controllers.WishlistContains(d.Wishlist, logg))
			r.Delete("/items/{productId}", controllers.WishlistRemove(d.Wishlist, logg))
		})

		r.Route("/recently-viewed", func(r chi.Router) {
			r.Get("/", controllers.RecentlyViewedFetch(d.Recent, logg))
			r.Post("/", controllers.RecentlyViewedRecord(d.Recent, logg))
			r.Delete("/", controllers.RecentlyViewedClear(d.Recent, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsBrowse(d.Catalog, logg))
			r.Get("/{productId}", controllers.ProductFetch(d.Catalog, logg))
			r.Get("/{productId}/reviews", controllers.ProductReviews(d.Upstream, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(loginPolicy, d.Counter, logg)).Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(d.Auth, logg))
			r.Get("/me", controllers.AuthMe(d.Auth, logg))
			r.Put("/me", controllers.AuthUpdateUser(d.Auth, logg))
			r.Post("/refresh", controllers.AuthRefresh(d.Auth, logg))
		})

		r.Route("/theme", func(r chi.Router) {
			r.Get("/", controllers.ThemeFetch(d.Prefs, logg))
			r.Put("/", controllers.ThemeUpdate(d.Prefs, logg))
		})

		r.Post("/orders", controllers.Checkout(d.Cart, d.Auth, d.Upstream, logg))
		r.Post("/session/reset", controllers.SessionReset(d.Cart, d.Wishlist, d.Recent, d.Auth, logg))
	})

	return r
}
