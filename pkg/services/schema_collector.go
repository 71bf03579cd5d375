package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/apperrors"
)

// TableSchema is the structural metadata read for one configured table.
type TableSchema struct {
	Name        string // As configured; used verbatim in every artifact
	Ref         datasource.TableRef
	Columns     []datasource.ColumnMetadata
	PrimaryKeys []string
	ForeignKeys []datasource.ForeignKeyMetadata
}

// HasPrimaryKey reports whether column is part of the primary key.
func (s TableSchema) HasPrimaryKey(column string) bool {
	for _, pk := range s.PrimaryKeys {
		if pk == column {
			return true
		}
	}
	return false
}

// SchemaCollector reads columns and keys for every configured table before
// any descriptions are generated, so structural errors abort the run early.
type SchemaCollector struct {
	reader        datasource.SchemaReader
	defaultSchema string
	logger        *zap.Logger
}

// NewSchemaCollector creates a collector. defaultSchema scopes unqualified
// table names and may be empty.
func NewSchemaCollector(reader datasource.SchemaReader, defaultSchema string, logger *zap.Logger) *SchemaCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaCollector{
		reader:        reader,
		defaultSchema: defaultSchema,
		logger:        logger.Named("schema-collector"),
	}
}

// Collect reads every table in order. Any error, including a table with no
// columns, is returned and ends the run.
func (c *SchemaCollector) Collect(ctx context.Context, tables []string) ([]TableSchema, error) {
	schemas := make([]TableSchema, 0, len(tables))

	for _, name := range tables {
		ref := datasource.ParseTableRef(name, c.defaultSchema)

		columns, err := c.reader.Columns(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("read columns of %s: %w", name, err)
		}
		if len(columns) == 0 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrTableNotFound, name)
		}

		pks, err := c.reader.PrimaryKeys(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("read primary keys of %s: %w", name, err)
		}

		fks, err := c.reader.ForeignKeys(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("read foreign keys of %s: %w", name, err)
		}

		c.logger.Info("Read table schema",
			zap.String("table", name),
			zap.Int("columns", len(columns)),
			zap.Strings("primary_key", pks),
			zap.Int("foreign_keys", len(fks)))

		schemas = append(schemas, TableSchema{
			Name:        name,
			Ref:         ref,
			Columns:     columns,
			PrimaryKeys: pks,
			ForeignKeys: fks,
		})
	}

	return schemas, nil
}
