package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/metaseed/pkg/models"
)

func sampleCatalog() *models.Catalog {
	return &models.Catalog{
		Columns: []models.ColumnRecord{
			{
				ColumnName: "Orders.CustomerId",
				ColumnDesc: "Customer who placed the order — see Customers.",
				Metadata: models.ColumnMetadata{
					Type:      models.RecordTypeColumn,
					TableName: "Orders",
					DataType:  "INT",
					Joins: []models.JoinCandidate{
						{Table: "Customers", On: "CustomerId", JoinType: models.JoinTypeLeftOuter},
					},
				},
				Examples: []string{"1", "<2>"},
			},
		},
		Tables: []models.TableRecord{
			{
				ID:       "Orders",
				Document: models.TableDocument("Orders"),
				Metadata: models.TableMetadata{
					Type:         models.RecordTypeTable,
					PrimaryKey:   []string{"OrderId"},
					JoinGuidance: []string{},
				},
			},
		},
		Relationships: []models.RelationshipRecord{
			models.NewRelationshipRecord("Orders", "CustomerId", "Customers", "CustomerId"),
			models.NewRelationshipRecord("Orders", "CustomerId", "Customers", "CustomerId"),
		},
	}
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestWriter_WritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, zaptest.NewLogger(t))

	require.NoError(t, w.Write(sampleCatalog()))

	var columns []models.ColumnRecord
	require.NoError(t, json.Unmarshal([]byte(readFile(t, dir, ColumnMetadataFile)), &columns))
	require.Len(t, columns, 1)
	assert.Equal(t, "Orders.CustomerId", columns[0].ColumnName)

	var tables []models.TableRecord
	require.NoError(t, json.Unmarshal([]byte(readFile(t, dir, TableMetadataFile)), &tables))
	require.Len(t, tables, 1)

	var doc models.RelationshipDocument
	require.NoError(t, yaml.Unmarshal([]byte(readFile(t, dir, RelationshipsFile)), &doc))
	assert.Len(t, doc.Relationships, 2, "yaml round-trip keeps every record")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "no temporary files left behind")
}

func TestWriter_JSONFormatting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, nil).Write(sampleCatalog()))

	columns := readFile(t, dir, ColumnMetadataFile)
	assert.True(t, strings.HasPrefix(columns, "[\n  {\n    \"column_name\""), columns)
	assert.Contains(t, columns, "— see Customers.", "non-ASCII is kept literal")
	assert.Contains(t, columns, `"<2>"`, "HTML characters are not escaped")
	assert.Contains(t, columns, `"is_foreign_key": false`)

	tables := readFile(t, dir, TableMetadataFile)
	assert.Contains(t, tables, `"document": "Orders table — contains important business data."`)
	assert.Contains(t, tables, `"join_guidance": []`)
}

func TestWriter_YAMLHasNoAliases(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, nil).Write(sampleCatalog()))

	out := readFile(t, dir, RelationshipsFile)
	assert.True(t, strings.HasPrefix(out, "RELATIONSHIPS:\n"), out)
	assert.NotContains(t, out, "&")
	assert.NotContains(t, out, "*")
	assert.Equal(t, 2, strings.Count(out, "left_table: Orders"))
	assert.Contains(t, out, "description: Orders → Customers via CustomerId")
	assert.Contains(t, out, "cardinality: ManyToOne")

	// Keys follow declaration order.
	assert.Less(t, strings.Index(out, "left_table"), strings.Index(out, "left_columns"))
	assert.Less(t, strings.Index(out, "right_columns"), strings.Index(out, "cardinality"))
}

func TestWriter_EmptyCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewWriter(dir, nil).Write(&models.Catalog{}))

	assert.Equal(t, "[]\n", readFile(t, dir, ColumnMetadataFile))
	assert.Equal(t, "[]\n", readFile(t, dir, TableMetadataFile))
	assert.Equal(t, "RELATIONSHIPS: []\n", readFile(t, dir, RelationshipsFile))
}

func TestWriter_OverwritesPriorOutput(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, ColumnMetadataFile)
	require.NoError(t, os.WriteFile(stale, []byte(`[{"column_name":"Old.Column"}]`), 0o644))

	require.NoError(t, NewWriter(dir, nil).Write(sampleCatalog()))

	out := readFile(t, dir, ColumnMetadataFile)
	assert.NotContains(t, out, "Old.Column")
}

func TestWriter_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "catalog", "seed")
	require.NoError(t, NewWriter(dir, nil).Write(sampleCatalog()))
	assert.FileExists(t, filepath.Join(dir, RelationshipsFile))
}

func TestWriter_NilCatalog(t *testing.T) {
	err := NewWriter(t.TempDir(), nil).Write(nil)
	assert.Error(t, err)
}
