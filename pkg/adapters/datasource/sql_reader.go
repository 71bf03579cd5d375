package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// SQLReader implements SchemaReader over database/sql for engines whose
// driver registers with the standard library (SQL Server, MySQL).
type SQLReader struct {
	db            *sql.DB
	dialect       Dialect
	defaultSchema string
	logger        *zap.Logger
}

// NewSQLReader wraps an open connection. The reader owns db and closes it.
func NewSQLReader(db *sql.DB, dialect Dialect, logger *zap.Logger) *SQLReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLReader{
		db:      db,
		dialect: dialect,
		logger:  logger.Named(dialect.Name),
	}
}

// WithDefaultSchema scopes unqualified table references to schema.
func (r *SQLReader) WithDefaultSchema(schema string) *SQLReader {
	r.defaultSchema = schema
	return r
}

func (r *SQLReader) resolve(t TableRef) TableRef {
	if t.Schema == "" {
		t.Schema = r.defaultSchema
	}
	return t
}

func (r *SQLReader) Columns(ctx context.Context, table TableRef) ([]ColumnMetadata, error) {
	table = r.resolve(table)
	query, args, err := r.dialect.ColumnsQuery(table)
	if err != nil {
		return nil, fmt.Errorf("build columns query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query columns for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []ColumnMetadata
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, ColumnMetadata{
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

func (r *SQLReader) PrimaryKeys(ctx context.Context, table TableRef) ([]string, error) {
	table = r.resolve(table)
	query, args, err := r.dialect.PrimaryKeysQuery(table)
	if err != nil {
		return nil, fmt.Errorf("build primary key query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query primary keys for %s: %w", table, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan primary key: %w", err)
		}
		keys = append(keys, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate primary keys: %w", err)
	}
	return keys, nil
}

func (r *SQLReader) ForeignKeys(ctx context.Context, table TableRef) ([]ForeignKeyMetadata, error) {
	table = r.resolve(table)
	query, args, err := r.dialect.ForeignKeysQuery(table)
	if err != nil {
		return nil, fmt.Errorf("build foreign key query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query foreign keys for %s: %w", table, err)
	}
	defer rows.Close()

	var fks []ForeignKeyMetadata
	for rows.Next() {
		var fk ForeignKeyMetadata
		var targetSchema sql.NullString
		if err := rows.Scan(&fk.SourceColumn, &targetSchema, &fk.TargetTable, &fk.TargetColumn); err != nil {
			return nil, fmt.Errorf("scan foreign key: %w", err)
		}
		fk.TargetSchema = targetSchema.String
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foreign keys: %w", err)
	}
	return fks, nil
}

func (r *SQLReader) ExampleValues(ctx context.Context, table TableRef, column ColumnMetadata, limit int) ([]string, error) {
	table = r.resolve(table)
	query, args, err := r.dialect.ExampleValuesQuery(table, column, limit)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query examples for %s.%s: %w", table, column.ColumnName, err)
	}
	defer rows.Close()

	var values []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan example: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate examples: %w", err)
	}
	return StringifyValues(values, limit), nil
}

func (r *SQLReader) Close() error {
	return r.db.Close()
}

// StringifyValues converts driver values to strings, dropping nulls and
// anything past limit.
func StringifyValues(values []any, limit int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if len(out) >= limit {
			break
		}
		if v == nil {
			continue
		}
		if b, ok := v.([]byte); ok {
			out = append(out, string(b))
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			s = fmt.Sprint(v)
		}
		out = append(out, s)
	}
	return out
}

var _ SchemaReader = (*SQLReader)(nil)
