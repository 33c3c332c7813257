// Package database opens the SQL Server connection used by the product repository.
package database

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/microsoft/go-mssqldb" // registers the "sqlserver" driver

	"github.com/Lixing-Zhang/product-service/internal/config"
)

// DriverName is the database/sql driver used for SQL Server
const DriverName = "sqlserver"

const connectTimeout = 10 * time.Second

// DSN builds a sqlserver:// connection URL from the configuration.
// DB_SERVER may carry a port ("host:1433") or a named instance ("host\SQLEXPRESS").
func DSN(cfg config.DatabaseConfig) string {
	host, instance, _ := strings.Cut(cfg.Server, `\`)

	query := url.Values{}
	if cfg.Name != "" {
		query.Set("database", cfg.Name)
	}
	query.Set("encrypt", strconv.FormatBool(cfg.Encrypt))
	query.Set("TrustServerCertificate", strconv.FormatBool(cfg.TrustServerCertificate))

	u := &url.URL{
		Scheme:   "sqlserver",
		Host:     host,
		RawQuery: query.Encode(),
	}
	if cfg.User != "" || cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	if instance != "" {
		u.Path = instance
	}

	return u.String()
}

// Open creates the connection handle and attempts one connection eagerly.
// A failed attempt is logged and the handle is still returned; requests that
// reach the database later fail on their own.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open(DriverName, DSN(cfg))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Error("database connection failed",
			"server", cfg.Server,
			"database", cfg.Name,
			"error", err,
		)
		return db, nil
	}

	logger.Info("connected to sql server database successfully",
		"server", cfg.Server,
		"database", cfg.Name,
	)
	return db, nil
}
