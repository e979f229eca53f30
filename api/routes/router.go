package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/macroplate/macroplate-backend/api/controllers"
	"github.com/macroplate/macroplate-backend/api/middleware"
	"github.com/macroplate/macroplate-backend/internal/auth"
	cartsvc "github.com/macroplate/macroplate-backend/internal/cart"
	"github.com/macroplate/macroplate-backend/internal/catalog"
	checkoutsvc "github.com/macroplate/macroplate-backend/internal/checkout"
	"github.com/macroplate/macroplate-backend/internal/goals"
	"github.com/macroplate/macroplate-backend/internal/orders"
	"github.com/macroplate/macroplate-backend/pkg/config"
	"github.com/macroplate/macroplate-backend/pkg/enums"
	"github.com/macroplate/macroplate-backend/pkg/logger"
	"github.com/macroplate/macroplate-backend/pkg/metrics"
	"github.com/macroplate/macroplate-backend/pkg/redis"
)

// Deps bundles everything the router wires into its handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      controllers.Pinger
	Redis   *redis.Client
	Metrics *metrics.HTTPMetrics
	// Gatherer backs the /metrics scrape endpoint. Leave nil to disable.
	Gatherer prometheus.Gatherer

	AuthService     auth.Service
	RegisterService auth.RegisterService
	GoalsService    goals.Service
	CatalogService  catalog.Service
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	// Interface conversions below must not capture a typed nil client.
	var cache controllers.Pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(deps.Metrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cache, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
	})

	r.Route("/api/meals", func(r chi.Router) {
		r.Get("/", controllers.MealsList(deps.CatalogService, logg))
		r.Get("/{mealId}", controllers.MealsGet(deps.CatalogService, logg))
	})

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.CartToken())
		r.Get("/", controllers.CartGet(deps.CheckoutService, logg))
		r.Post("/items", controllers.CartSetItem(deps.CartService, deps.CheckoutService, logg))
		r.Delete("/items/{mealId}", controllers.CartRemoveItem(deps.CartService, deps.CheckoutService, logg))
		r.Delete("/", controllers.CartClear(deps.CartService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", controllers.GoalsGet(deps.GoalsService, logg))
			r.Put("/", controllers.GoalsUpdate(deps.GoalsService, logg))
		})

		r.With(middleware.CartToken()).Post("/checkout", controllers.CheckoutSubmit(deps.CheckoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.OrdersGet(deps.OrdersService, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Route("/meals", func(r chi.Router) {
			r.Get("/", controllers.AdminMealsList(deps.CatalogService, logg))
			r.Post("/", controllers.AdminMealsCreate(deps.CatalogService, logg))
			r.Put("/{mealId}", controllers.AdminMealsUpdate(deps.CatalogService, logg))
			r.Patch("/{mealId}/availability", controllers.AdminMealsSetAvailability(deps.CatalogService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrdersList(deps.OrdersService, logg))
			r.Get("/{orderId}", controllers.AdminOrdersGet(deps.OrdersService, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrdersUpdateStatus(deps.OrdersService, logg))
		})
	})

	return r
}
