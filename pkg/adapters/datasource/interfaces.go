package datasource

import "context"

// SchemaReader reads catalog metadata for a single table at a time.
// Structural methods (Columns, PrimaryKeys, ForeignKeys) return errors that
// callers treat as fatal; ExampleValues failures are expected to be tolerated.
// Each implementation owns its connection and must be closed when done.
type SchemaReader interface {
	// Columns returns the table's columns in ordinal order.
	Columns(ctx context.Context, table TableRef) ([]ColumnMetadata, error)

	// PrimaryKeys returns the primary-key column names in key order.
	PrimaryKeys(ctx context.Context, table TableRef) ([]string, error)

	// ForeignKeys returns one entry per foreign-key column of the table.
	ForeignKeys(ctx context.Context, table TableRef) ([]ForeignKeyMetadata, error)

	// ExampleValues returns up to limit non-null values of a column, as strings.
	// The column's declared type selects how binary values are rendered.
	ExampleValues(ctx context.Context, table TableRef, column ColumnMetadata, limit int) ([]string, error)

	// Close releases the database connection.
	Close() error
}
