package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/Lixing-Zhang/product-service/internal/handlers"
	"github.com/Lixing-Zhang/product-service/internal/middleware"
)

// routerDeps groups what the HTTP layer needs
type routerDeps struct {
	logger   *slog.Logger
	products *handlers.ProductHandler
	health   *handlers.HealthHandler
	registry *prometheus.Registry
	tracer   trace.Tracer
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(deps.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Tracing(deps.tracer))
	r.Use(middleware.NewMetrics(deps.registry).Handler)

	// All origins are allowed
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", deps.health.ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))

	r.Get("/products", deps.products.ListProducts)
	r.Post("/products", deps.products.CreateProduct)
	r.Delete("/products/{id}", deps.products.DeleteProduct)

	return r
}
