package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/repository"
	"github.com/Lixing-Zhang/kart-challenge/product-api/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds the dependencies of the HTTP router
type RouterConfig struct {
	Store  *repository.Deferred
	Auth   config.AuthConfig
	CORS   config.CORSConfig
	Logger *slog.Logger
}

// NewRouter builds the application router. Every route, including unmatched
// ones, answers 503 until the store handle is ready.
func NewRouter(cfg RouterConfig) http.Handler {
	productService := service.NewProductService(cfg.Store)
	productHandler := NewProductHandler(productService, cfg.Logger)
	healthHandler := NewHealthHandler(cfg.Logger)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.RequireReady(cfg.Store))

	r.NotFound(NotFound(cfg.Logger))
	r.MethodNotAllowed(MethodNotAllowed(cfg.Logger))

	r.Get("/", Index(cfg.Logger))
	r.Get("/health", healthHandler.ServeHTTP)

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Post("/", productHandler.CreateProduct)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})
	})

	return r
}
