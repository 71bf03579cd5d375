package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/models"
)

func TestBuildRelationships_OnlyConfiguredTargets(t *testing.T) {
	schemas := []TableSchema{
		{
			Name: "Orders",
			Ref:  datasource.TableRef{Name: "Orders"},
			ForeignKeys: []datasource.ForeignKeyMetadata{
				{SourceColumn: "CustomerId", TargetSchema: "dbo", TargetTable: "Customers", TargetColumn: "CustomerId"},
				{SourceColumn: "RegionId", TargetSchema: "dbo", TargetTable: "Regions", TargetColumn: "RegionId"},
			},
		},
		{Name: "Customers", Ref: datasource.TableRef{Name: "Customers"}},
	}

	records, skipped := BuildRelationships(schemas)
	require.Len(t, records, 1)
	assert.Equal(t, 1, skipped)

	assert.Equal(t, models.RelationshipRecord{
		LeftTable:    "Orders",
		LeftColumns:  []string{"CustomerId"},
		RightTable:   "Customers",
		RightColumns: []string{"CustomerId"},
		Cardinality:  "ManyToOne",
		Description:  "Orders → Customers via CustomerId",
	}, records[0])
}

func TestBuildRelationships_SchemaQualifiedTarget(t *testing.T) {
	schemas := []TableSchema{
		{
			Name: "logistics.Shipments",
			Ref:  datasource.TableRef{Schema: "logistics", Name: "Shipments"},
			ForeignKeys: []datasource.ForeignKeyMetadata{
				{SourceColumn: "OrderId", TargetSchema: "sales", TargetTable: "Orders", TargetColumn: "OrderId"},
				{SourceColumn: "LegacyOrderId", TargetSchema: "archive", TargetTable: "Orders", TargetColumn: "OrderId"},
			},
		},
		{Name: "sales.Orders", Ref: datasource.TableRef{Schema: "sales", Name: "Orders"}},
	}

	records, skipped := BuildRelationships(schemas)
	require.Len(t, records, 1)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "sales.Orders", records[0].RightTable, "right table uses the configured name")
	assert.Equal(t, "logistics.Shipments → sales.Orders via OrderId", records[0].Description)
}

func TestBuildRelationships_SelfReferenceAndComposite(t *testing.T) {
	schemas := []TableSchema{
		{
			Name: "Employees",
			Ref:  datasource.TableRef{Name: "Employees"},
			ForeignKeys: []datasource.ForeignKeyMetadata{
				{SourceColumn: "ManagerId", TargetTable: "Employees", TargetColumn: "EmployeeId"},
			},
		},
		{
			Name: "Assignments",
			Ref:  datasource.TableRef{Name: "Assignments"},
			ForeignKeys: []datasource.ForeignKeyMetadata{
				{SourceColumn: "EmployeeId", TargetTable: "Employees", TargetColumn: "EmployeeId"},
				{SourceColumn: "DeptId", TargetTable: "Employees", TargetColumn: "DeptId"},
			},
		},
	}

	records, skipped := BuildRelationships(schemas)
	assert.Zero(t, skipped)
	require.Len(t, records, 3)
	assert.Equal(t, "Employees", records[0].RightTable)
	for _, r := range records {
		assert.Len(t, r.LeftColumns, 1)
		assert.Len(t, r.RightColumns, 1)
	}
}

func TestBuildRelationships_EmptyIsNotNil(t *testing.T) {
	records, skipped := BuildRelationships(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Zero(t, skipped)
}
