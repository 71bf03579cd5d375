package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/logging"
)

// Dialect is the PostgreSQL catalog dialect: $N parameters and LIMIT n.
var Dialect = datasource.Dialect{
	Name:        "postgres",
	Placeholder: sq.Dollar,
	QuoteIdent:  func(s string) string { return pgx.Identifier{s}.Sanitize() },
	ExampleExpr: func(col, _ string) string { return col + "::text" },
}

// SchemaReader reads the PostgreSQL catalog over a pgx pool.
type SchemaReader struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewSchemaReader creates a pool, pings it and returns a reader that owns it.
// If logger is nil, a no-op logger is used.
func NewSchemaReader(ctx context.Context, cfg *Config, logger *zap.Logger) (*SchemaReader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("postgres")

	connStr := buildConnectionString(cfg)
	logger.Debug("Opening PostgreSQL pool", zap.String("dsn", logging.SanitizeConnectionString(connStr)))

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	poolCfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping failed: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return NewSchemaReaderFromPool(pool, logger), nil
}

// NewSchemaReaderFromPool wraps an existing pool. Close closes the pool.
func NewSchemaReaderFromPool(pool *pgxpool.Pool, logger *zap.Logger) *SchemaReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaReader{pool: pool, logger: logger}
}

func (r *SchemaReader) Columns(ctx context.Context, table datasource.TableRef) ([]datasource.ColumnMetadata, error) {
	query, args, err := Dialect.ColumnsQuery(table)
	if err != nil {
		return nil, fmt.Errorf("build columns query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query columns for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []datasource.ColumnMetadata
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, datasource.ColumnMetadata{
			ColumnName: name,
			DataType:   dataType,
			IsNullable: strings.EqualFold(nullable, "YES"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	r.logger.Debug("Read columns", zap.String("table", table.String()), zap.Int("count", len(columns)))
	return columns, nil
}

func (r *SchemaReader) PrimaryKeys(ctx context.Context, table datasource.TableRef) ([]string, error) {
	query, args, err := Dialect.PrimaryKeysQuery(table)
	if err != nil {
		return nil, fmt.Errorf("build primary key query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query primary keys for %s: %w", table, err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect primary keys: %w", err)
	}
	return keys, nil
}

func (r *SchemaReader) ForeignKeys(ctx context.Context, table datasource.TableRef) ([]datasource.ForeignKeyMetadata, error) {
	query, args, err := Dialect.ForeignKeysQuery(table)
	if err != nil {
		return nil, fmt.Errorf("build foreign key query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys for %s: %w", table, err)
	}
	defer rows.Close()

	var fks []datasource.ForeignKeyMetadata
	for rows.Next() {
		var fk datasource.ForeignKeyMetadata
		if err := rows.Scan(&fk.SourceColumn, &fk.TargetSchema, &fk.TargetTable, &fk.TargetColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign keys: %w", err)
	}
	return fks, nil
}

func (r *SchemaReader) ExampleValues(ctx context.Context, table datasource.TableRef, column datasource.ColumnMetadata, limit int) ([]string, error) {
	query, args, err := Dialect.ExampleValuesQuery(table, column, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query examples for %s.%s: %w", table, column.ColumnName, err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[any])
	if err != nil {
		return nil, fmt.Errorf("collect examples: %w", err)
	}
	return datasource.StringifyValues(values, limit), nil
}

// Close releases the pool.
func (r *SchemaReader) Close() error {
	if r.pool != nil {
		r.pool.Close()
	}
	return nil
}

var _ datasource.SchemaReader = (*SchemaReader)(nil)
