package services

import (
	"context"
	"fmt"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
)

// fakeTable is the catalog content served by fakeReader for one table.
type fakeTable struct {
	columns  []datasource.ColumnMetadata
	pks      []string
	fks      []datasource.ForeignKeyMetadata
	examples map[string][]string
}

// fakeReader is an in-memory SchemaReader keyed by bare table name.
type fakeReader struct {
	tables map[string]fakeTable

	ColumnsErr     error
	PrimaryKeysErr error
	ExamplesErr    error

	ExampleCalls int
	ExampleLimit int
	ExampleTypes map[string]string // column -> declared type passed in
	Refs         []datasource.TableRef
	Closed       bool
}

var _ datasource.SchemaReader = (*fakeReader)(nil)

func (f *fakeReader) Columns(ctx context.Context, table datasource.TableRef) ([]datasource.ColumnMetadata, error) {
	f.Refs = append(f.Refs, table)
	if f.ColumnsErr != nil {
		return nil, f.ColumnsErr
	}
	return f.tables[table.Name].columns, nil
}

func (f *fakeReader) PrimaryKeys(ctx context.Context, table datasource.TableRef) ([]string, error) {
	if f.PrimaryKeysErr != nil {
		return nil, f.PrimaryKeysErr
	}
	return f.tables[table.Name].pks, nil
}

func (f *fakeReader) ForeignKeys(ctx context.Context, table datasource.TableRef) ([]datasource.ForeignKeyMetadata, error) {
	return f.tables[table.Name].fks, nil
}

func (f *fakeReader) ExampleValues(ctx context.Context, table datasource.TableRef, column datasource.ColumnMetadata, limit int) ([]string, error) {
	f.ExampleCalls++
	f.ExampleLimit = limit
	if f.ExampleTypes == nil {
		f.ExampleTypes = make(map[string]string)
	}
	f.ExampleTypes[column.ColumnName] = column.DataType
	if f.ExamplesErr != nil {
		return nil, f.ExamplesErr
	}
	t, ok := f.tables[table.Name]
	if !ok {
		return nil, fmt.Errorf("no table %s", table.Name)
	}
	return t.examples[column.ColumnName], nil
}

func (f *fakeReader) Close() error {
	f.Closed = true
	return nil
}

func col(name, dataType string, nullable bool) datasource.ColumnMetadata {
	return datasource.ColumnMetadata{ColumnName: name, DataType: dataType, IsNullable: nullable}
}

// salesReader serves three related tables and one foreign key to a table
// that is never configured in the tests (Regions).
func salesReader() *fakeReader {
	return &fakeReader{tables: map[string]fakeTable{
		"Customers": {
			columns: []datasource.ColumnMetadata{
				col("CustomerId", "int", false),
				col("Name", "nvarchar", false),
				col("RegionId", "int", true),
			},
			pks: []string{"CustomerId"},
			fks: []datasource.ForeignKeyMetadata{
				{SourceColumn: "RegionId", TargetSchema: "dbo", TargetTable: "Regions", TargetColumn: "RegionId"},
			},
			examples: map[string][]string{
				"CustomerId": {"1", "2"},
				"Name":       {"Ada", "Grace"},
			},
		},
		"Orders": {
			columns: []datasource.ColumnMetadata{
				col("OrderId", "int", false),
				col("CustomerId", "int", false),
				col("Status", "varchar", true),
			},
			pks: []string{"OrderId"},
			fks: []datasource.ForeignKeyMetadata{
				{SourceColumn: "CustomerId", TargetSchema: "dbo", TargetTable: "Customers", TargetColumn: "CustomerId"},
			},
			examples: map[string][]string{
				"OrderId": {"10", "11", "12"},
			},
		},
		"Invoices": {
			columns: []datasource.ColumnMetadata{
				col("InvoiceId", "int", false),
				col("OrderId", "int", false),
				col("Status", "varchar", true),
			},
			pks: []string{"InvoiceId"},
			fks: []datasource.ForeignKeyMetadata{
				{SourceColumn: "OrderId", TargetSchema: "dbo", TargetTable: "Orders", TargetColumn: "OrderId"},
			},
		},
		"Empty": {},
	}}
}
