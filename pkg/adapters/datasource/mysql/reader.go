package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/logging"
)

// quoteIdent wraps an identifier in backticks, doubling embedded ones.
func quoteIdent(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

var binaryTypes = map[string]bool{
	"binary":     true,
	"varbinary":  true,
	"tinyblob":   true,
	"blob":       true,
	"mediumblob": true,
	"longblob":   true,
}

// exampleExpr selects values raw, since the driver returns text bytes for
// every type, except binary columns which are rendered as 0x-prefixed hex.
func exampleExpr(quotedColumn, dataType string) string {
	if binaryTypes[strings.ToLower(dataType)] {
		return fmt.Sprintf("CONCAT('0x', HEX(%s))", quotedColumn)
	}
	return quotedColumn
}

// Dialect is the MySQL catalog dialect: ? parameters, LIMIT n, and foreign
// keys read from KEY_COLUMN_USAGE.REFERENCED_* columns.
var Dialect = datasource.Dialect{
	Name:              "mysql",
	Placeholder:       sq.Question,
	QuoteIdent:        quoteIdent,
	ExampleExpr:       exampleExpr,
	ReferencedColumns: true,
}

// NewSchemaReader opens and pings a MySQL connection.
func NewSchemaReader(ctx context.Context, cfg *Config, logger *zap.Logger) (*datasource.SQLReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn, err := cfg.dsn()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	logger.Debug("Opening MySQL connection", zap.String("dsn", logging.SanitizeConnectionString(dsn)))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	logger.Info("Connected to MySQL",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return datasource.NewSQLReader(db, Dialect, logger).WithDefaultSchema(cfg.DefaultSchema()), nil
}
