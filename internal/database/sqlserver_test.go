package database

import (
	"bytes"
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/product-service/internal/config"
	"github.com/Lixing-Zhang/product-service/pkg/logger"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.DatabaseConfig
		host     string
		path     string
		user     string
		password string
		query    map[string]string
	}{
		{
			name: "development defaults",
			cfg: config.DatabaseConfig{
				User: "sa", Password: "p@ss:word", Server: "localhost", Name: "Shop",
				Encrypt: true, TrustServerCertificate: true,
			},
			host:     "localhost",
			user:     "sa",
			password: "p@ss:word",
			query: map[string]string{
				"database":               "Shop",
				"encrypt":                "true",
				"TrustServerCertificate": "true",
			},
		},
		{
			name: "port and certificate validation",
			cfg: config.DatabaseConfig{
				User: "app", Password: "pw", Server: "db.internal:1433", Name: "Shop",
				Encrypt: true, TrustServerCertificate: false,
			},
			host:     "db.internal:1433",
			user:     "app",
			password: "pw",
			query: map[string]string{
				"database":               "Shop",
				"encrypt":                "true",
				"TrustServerCertificate": "false",
			},
		},
		{
			name: "named instance",
			cfg: config.DatabaseConfig{
				User: "sa", Password: "pw", Server: `localhost\SQLEXPRESS`, Name: "Shop",
				Encrypt: true, TrustServerCertificate: true,
			},
			host:     "localhost",
			path:     "/SQLEXPRESS",
			user:     "sa",
			password: "pw",
			query: map[string]string{
				"database":               "Shop",
				"encrypt":                "true",
				"TrustServerCertificate": "true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := url.Parse(DSN(tt.cfg))
			require.NoError(t, err)

			assert.Equal(t, "sqlserver", u.Scheme)
			assert.Equal(t, tt.host, u.Host)
			assert.Equal(t, tt.path, u.Path)
			assert.Equal(t, tt.user, u.User.Username())
			password, _ := u.User.Password()
			assert.Equal(t, tt.password, password)

			q := u.Query()
			for key, want := range tt.query {
				assert.Equal(t, want, q.Get(key), "query parameter %s", key)
			}
		})
	}
}

func TestDSN_NoCredentials(t *testing.T) {
	u, err := url.Parse(DSN(config.DatabaseConfig{Server: "localhost"}))
	require.NoError(t, err)

	assert.Nil(t, u.User)
	assert.Empty(t, u.Query().Get("database"))
}

func TestOpen_UnreachableServerIsNotFatal(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db, err := Open(ctx, config.DatabaseConfig{Server: "127.0.0.1:1", Encrypt: true}, log)
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	assert.Contains(t, buf.String(), "database connection failed")
}
