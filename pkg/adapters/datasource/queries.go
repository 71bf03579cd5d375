package datasource

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect captures what differs between engines when reading the
// INFORMATION_SCHEMA catalog and sampling column values.
type Dialect struct {
	Name        string
	Placeholder sq.PlaceholderFormat

	// QuoteIdent quotes a single identifier part.
	QuoteIdent func(string) string

	// ExampleExpr wraps an already-quoted column so the engine returns text.
	// dataType is the declared type as read from INFORMATION_SCHEMA.COLUMNS.
	ExampleExpr func(quotedColumn, dataType string) string

	// UseTop selects "SELECT TOP (n)" instead of a trailing LIMIT.
	UseTop bool

	// ReferencedColumns reads foreign keys from KEY_COLUMN_USAGE.REFERENCED_*
	// instead of joining REFERENTIAL_CONSTRAINTS.
	ReferencedColumns bool
}

func (d Dialect) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}

// QualifiedName quotes a table reference for use in a FROM clause.
func (d Dialect) QualifiedName(t TableRef) string {
	if t.Schema == "" {
		return d.QuoteIdent(t.Name)
	}
	return d.QuoteIdent(t.Schema) + "." + d.QuoteIdent(t.Name)
}

// ColumnsQuery lists a table's columns in ordinal order.
func (d Dialect) ColumnsQuery(t TableRef) (string, []any, error) {
	q := d.builder().
		Select("COLUMN_NAME", "DATA_TYPE", "IS_NULLABLE").
		From("INFORMATION_SCHEMA.COLUMNS").
		Where(sq.Eq{"TABLE_NAME": t.Name})
	if t.Schema != "" {
		q = q.Where(sq.Eq{"TABLE_SCHEMA": t.Schema})
	}
	return q.OrderBy("ORDINAL_POSITION").ToSql()
}

// PrimaryKeysQuery lists primary-key columns in key order.
func (d Dialect) PrimaryKeysQuery(t TableRef) (string, []any, error) {
	q := d.builder().
		Select("kcu.COLUMN_NAME").
		From("INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc").
		Join("INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu" +
			" ON kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME" +
			" AND kcu.CONSTRAINT_SCHEMA = tc.CONSTRAINT_SCHEMA" +
			" AND kcu.TABLE_SCHEMA = tc.TABLE_SCHEMA" +
			" AND kcu.TABLE_NAME = tc.TABLE_NAME").
		Where(sq.Eq{"tc.CONSTRAINT_TYPE": "PRIMARY KEY"}).
		Where(sq.Eq{"tc.TABLE_NAME": t.Name})
	if t.Schema != "" {
		q = q.Where(sq.Eq{"tc.TABLE_SCHEMA": t.Schema})
	}
	return q.OrderBy("kcu.ORDINAL_POSITION").ToSql()
}

// ForeignKeysQuery lists (column, referenced schema, referenced table,
// referenced column) for every foreign-key column of the table.
func (d Dialect) ForeignKeysQuery(t TableRef) (string, []any, error) {
	if d.ReferencedColumns {
		q := d.builder().
			Select("COLUMN_NAME", "REFERENCED_TABLE_SCHEMA", "REFERENCED_TABLE_NAME", "REFERENCED_COLUMN_NAME").
			From("INFORMATION_SCHEMA.KEY_COLUMN_USAGE").
			Where(sq.Eq{"TABLE_NAME": t.Name}).
			Where(sq.NotEq{"REFERENCED_TABLE_NAME": nil})
		if t.Schema != "" {
			q = q.Where(sq.Eq{"TABLE_SCHEMA": t.Schema})
		}
		return q.OrderBy("CONSTRAINT_NAME", "ORDINAL_POSITION").ToSql()
	}

	q := d.builder().
		Select("cu.COLUMN_NAME", "pt.TABLE_SCHEMA", "pt.TABLE_NAME", "pt.COLUMN_NAME").
		From("INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS rc").
		Join("INFORMATION_SCHEMA.KEY_COLUMN_USAGE cu" +
			" ON cu.CONSTRAINT_NAME = rc.CONSTRAINT_NAME" +
			" AND cu.CONSTRAINT_SCHEMA = rc.CONSTRAINT_SCHEMA").
		Join("INFORMATION_SCHEMA.KEY_COLUMN_USAGE pt" +
			" ON pt.CONSTRAINT_NAME = rc.UNIQUE_CONSTRAINT_NAME" +
			" AND pt.CONSTRAINT_SCHEMA = rc.UNIQUE_CONSTRAINT_SCHEMA" +
			" AND pt.ORDINAL_POSITION = cu.ORDINAL_POSITION").
		Where(sq.Eq{"cu.TABLE_NAME": t.Name})
	if t.Schema != "" {
		q = q.Where(sq.Eq{"cu.TABLE_SCHEMA": t.Schema})
	}
	return q.OrderBy("rc.CONSTRAINT_NAME", "cu.ORDINAL_POSITION").ToSql()
}

// ExampleValuesQuery samples up to limit non-null values of one column.
// The statement binds no arguments, so it is built with Question
// placeholders: any "?" inside a quoted identifier is left untouched.
func (d Dialect) ExampleValuesQuery(t TableRef, column ColumnMetadata, limit int) (string, []any, error) {
	if limit <= 0 {
		return "", nil, fmt.Errorf("example limit must be positive, got %d", limit)
	}
	col := d.QuoteIdent(column.ColumnName)
	q := sq.StatementBuilder.PlaceholderFormat(sq.Question).
		Select(d.ExampleExpr(col, column.DataType)).
		From(d.QualifiedName(t)).
		Where(col + " IS NOT NULL")
	if d.UseTop {
		q = q.Options(fmt.Sprintf("TOP (%d)", limit))
	} else {
		q = q.Limit(uint64(limit))
	}
	return q.ToSql()
}
