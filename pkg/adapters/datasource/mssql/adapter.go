package mssql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"         // SQL Server driver
	_ "github.com/microsoft/go-mssqldb/azuread" // Azure AD support
	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/logging"
)

// NewSchemaReader opens a SQL Server connection and verifies it before
// returning a catalog reader. Supports two authentication methods:
//  1. SQL Authentication (username/password)
//  2. Service Principal (Azure AD with client credentials)
func NewSchemaReader(ctx context.Context, cfg *Config, logger *zap.Logger) (*datasource.SQLReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	driver, dsn, err := cfg.connectionString()
	if err != nil {
		return nil, err
	}

	logger.Debug("Opening SQL Server connection",
		zap.String("driver", driver),
		zap.String("dsn", logging.SanitizeConnectionString(dsn)))

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", cfg.AuthMethod, err)
	}

	// The run is sequential; one connection is all it needs.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connection test failed: %w", err)
	}

	logger.Info("Connected to SQL Server",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database),
		zap.String("auth_method", cfg.AuthMethod))

	return datasource.NewSQLReader(db, Dialect, logger), nil
}
