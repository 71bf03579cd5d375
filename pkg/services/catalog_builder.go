package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/logging"
	"github.com/ekaya-inc/metaseed/pkg/models"
	"github.com/ekaya-inc/metaseed/pkg/prompts"
)

// ProgressCallback reports progress after each column.
type ProgressCallback func(current, total int, message string)

// CatalogBuilder runs the full read, describe, join pipeline for a fixed
// set of tables and returns everything the artifact writer needs.
type CatalogBuilder interface {
	// Build processes tables in order, one column at a time.
	// The progressCallback is called after each column (can be nil).
	Build(ctx context.Context, tables []string, progressCallback ProgressCallback) (*models.Catalog, *models.RunSummary, error)
}

type catalogBuilder struct {
	reader        datasource.SchemaReader
	describer     ColumnDescriber
	defaultSchema string
	exampleLimit  int
	logger        *zap.Logger
}

// NewCatalogBuilder creates a builder. exampleLimit of 0 disables example
// sampling; defaultSchema scopes unqualified table names and may be empty.
func NewCatalogBuilder(
	reader datasource.SchemaReader,
	describer ColumnDescriber,
	defaultSchema string,
	exampleLimit int,
	logger *zap.Logger,
) CatalogBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &catalogBuilder{
		reader:        reader,
		describer:     describer,
		defaultSchema: defaultSchema,
		exampleLimit:  exampleLimit,
		logger:        logger.Named("catalog-builder"),
	}
}

func (b *catalogBuilder) Build(ctx context.Context, tables []string, progressCallback ProgressCallback) (*models.Catalog, *models.RunSummary, error) {
	schemas, err := NewSchemaCollector(b.reader, b.defaultSchema, b.logger).Collect(ctx, tables)
	if err != nil {
		return nil, nil, err
	}

	total := 0
	for _, s := range schemas {
		total += len(s.Columns)
	}

	joins := NewJoinInferrer(schemas)
	summary := &models.RunSummary{Tables: len(schemas)}
	catalog := &models.Catalog{
		Columns: make([]models.ColumnRecord, 0, total),
		Tables:  make([]models.TableRecord, 0, len(schemas)),
	}

	completed := 0
	for _, s := range schemas {
		for _, col := range s.Columns {
			if err := ctx.Err(); err != nil {
				return nil, nil, fmt.Errorf("run interrupted at %s: %w",
					models.QualifiedColumnName(s.Name, col.ColumnName), err)
			}

			record, fellBack := b.buildColumn(ctx, s, col, joins)
			catalog.Columns = append(catalog.Columns, record)
			if fellBack {
				summary.FallbackDescriptions++
			}

			completed++
			if progressCallback != nil {
				progressCallback(completed, total, record.ColumnName)
			}
		}

		catalog.Tables = append(catalog.Tables, buildTableRecord(s))
	}

	relationships, skipped := BuildRelationships(schemas)
	catalog.Relationships = relationships

	summary.Columns = len(catalog.Columns)
	summary.Relationships = len(relationships)
	summary.SkippedForeignKeys = skipped

	if skipped > 0 {
		b.logger.Info("Ignored foreign keys to tables outside the configured set",
			zap.Int("count", skipped))
	}

	return catalog, summary, nil
}

func (b *catalogBuilder) buildColumn(ctx context.Context, s TableSchema, col datasource.ColumnMetadata, joins *JoinInferrer) (models.ColumnRecord, bool) {
	isPK := s.HasPrimaryKey(col.ColumnName)

	desc := b.describer.Describe(ctx, prompts.ColumnContext{
		Table:        s.Name,
		Column:       col.ColumnName,
		DataType:     col.DataType,
		IsPrimaryKey: isPK,
	})

	return models.ColumnRecord{
		ColumnName: models.QualifiedColumnName(s.Name, col.ColumnName),
		ColumnDesc: desc.Text,
		Metadata: models.ColumnMetadata{
			Type:         models.RecordTypeColumn,
			TableName:    s.Name,
			DataType:     strings.ToUpper(col.DataType),
			Nullable:     col.IsNullable,
			IsPrimaryKey: isPK,
			IsForeignKey: false,
			Joins:        joins.CandidatesFor(s.Name, col.ColumnName),
		},
		Examples: b.examples(ctx, s, col),
	}, desc.Fallback
}

// examples samples non-null values. Failures are logged and give an empty list.
func (b *catalogBuilder) examples(ctx context.Context, s TableSchema, column datasource.ColumnMetadata) []string {
	if b.exampleLimit <= 0 {
		return []string{}
	}

	values, err := b.reader.ExampleValues(ctx, s.Ref, column, b.exampleLimit)
	if err != nil {
		b.logger.Warn("Example values unavailable",
			zap.String("table", s.Name),
			zap.String("column", column.ColumnName),
			zap.String("error", logging.SanitizeError(err)))
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	if len(values) > b.exampleLimit {
		values = values[:b.exampleLimit]
	}
	return values
}

func buildTableRecord(s TableSchema) models.TableRecord {
	pk := make([]string, len(s.PrimaryKeys))
	copy(pk, s.PrimaryKeys)

	return models.TableRecord{
		ID:       s.Name,
		Document: models.TableDocument(s.Name),
		Metadata: models.TableMetadata{
			Type:         models.RecordTypeTable,
			PrimaryKey:   pk,
			JoinGuidance: []string{},
		},
	}
}
