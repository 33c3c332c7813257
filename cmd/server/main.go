package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Lixing-Zhang/product-service/internal/config"
	"github.com/Lixing-Zhang/product-service/internal/database"
	"github.com/Lixing-Zhang/product-service/internal/handlers"
	"github.com/Lixing-Zhang/product-service/internal/repository"
	"github.com/Lixing-Zhang/product-service/internal/service"
	"github.com/Lixing-Zhang/product-service/internal/tracing"
	"github.com/Lixing-Zhang/product-service/pkg/logger"
)

const (
	serviceName = "product-service"
	version     = "1.0.0"
)

// Exported spans are written to stderr
var spanOutput io.Writer = os.Stderr

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting product api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	tp, err := tracing.Setup(serviceName, cfg.Tracing.Enabled, spanOutput)
	if err != nil {
		log.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	// Connection failures are logged inside Open and do not stop startup
	db, err := database.Open(context.Background(), cfg.Database, log)
	if err != nil {
		log.Error("invalid database configuration", "error", err)
		os.Exit(1)
	}

	productRepo := repository.NewSQLServerProductRepository(db)
	productService := service.NewProductService(productRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := newRouter(routerDeps{
		logger:   log,
		products: handlers.NewProductHandler(productService, log),
		health:   handlers.NewHealthHandler(productRepo, version, log),
		registry: registry,
		tracer:   tp.Tracer(serviceName),
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	if err := db.Close(); err != nil {
		log.Error("failed to close database", "error", err)
	}
	if err := tp.Shutdown(ctx); err != nil {
		log.Error("failed to flush traces", "error", err)
	}

	log.Info("server stopped gracefully")
}
