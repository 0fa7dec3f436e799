package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tablepos/api/internal/config"
	"github.com/tablepos/api/internal/database"
	"github.com/tablepos/api/internal/events"
	"github.com/tablepos/api/internal/handler"
	"github.com/tablepos/api/internal/idempotency"
	mw "github.com/tablepos/api/internal/middleware"
	"github.com/tablepos/api/internal/service"
	"github.com/tablepos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Every route except auth, health and the websocket upgrade requires a
// bearer token; the token's user is the tenant.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, publisher events.Publisher, idem idempotency.Store) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", mw.IdempotencyKeyHeader},
		ExposedHeaders:   []string{mw.ReplayedHeader},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Sockets authenticate with ?token= since browsers cannot set headers.
	r.Method(http.MethodGet, "/ws/orders", ws.NewHandler(hub, cfg.JWTSecret, cfg.CORSOrigins))

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		categoryHandler := handler.NewCategoryHandler(queries)
		r.Route("/categories", categoryHandler.RegisterRoutes)

		productHandler := handler.NewProductHandler(queries, pool, func(db database.DBTX) handler.ProductStore {
			return database.New(db)
		})
		r.Route("/products", productHandler.RegisterRoutes)

		tableHandler := handler.NewTableHandler(queries)
		r.Route("/tables", tableHandler.RegisterRoutes)

		taxHandler := handler.NewTaxHandler(queries, service.NewTaxCalculator(queries))
		r.Route("/taxes", taxHandler.RegisterRoutes)

		orderService := service.NewOrderService(pool, func(db database.DBTX) service.OrderStore {
			return database.New(db)
		})
		orderHandler := handler.NewOrderHandler(orderService, queries, publisher)
		r.Route("/orders", func(r chi.Router) {
			r.With(mw.Idempotent(idem, idempotency.ScopeOrderCreate)).Post("/", orderHandler.Create)
			orderHandler.RegisterRoutes(r)
		})
	})

	return r
}
