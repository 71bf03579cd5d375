package datasource

import (
	sqlcheck "github.com/ekaya-inc/metaseed/pkg/sql"
)

// TableRef identifies a table. Schema may be empty, in which case catalog
// lookups match the table name in any schema visible to the login.
type TableRef struct {
	Schema string
	Name   string
}

// ParseTableRef splits a configured "schema.table" or "table" name.
// defaultSchema applies only to unqualified names.
func ParseTableRef(name, defaultSchema string) TableRef {
	schema, table := sqlcheck.SplitQualified(name)
	if schema == "" {
		schema = defaultSchema
	}
	return TableRef{Schema: schema, Name: table}
}

// String returns the reference as it would be configured.
func (t TableRef) String() string {
	if t.Schema == "" {
		return t.Name
	}
	return t.Schema + "." + t.Name
}

// ColumnMetadata is one row of INFORMATION_SCHEMA.COLUMNS.
type ColumnMetadata struct {
	ColumnName string
	DataType   string // As declared by the catalog, not normalized
	IsNullable bool
}

// ForeignKeyMetadata is one column of a foreign-key constraint.
type ForeignKeyMetadata struct {
	SourceColumn string
	TargetSchema string
	TargetTable  string
	TargetColumn string
}
