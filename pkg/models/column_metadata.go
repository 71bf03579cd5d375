package models

import "fmt"

// Record type discriminators written into every artifact entry.
const (
	RecordTypeColumn = "column"
	RecordTypeTable  = "table"
)

// JoinTypeLeftOuter is the only join type the name-matching heuristic emits.
const JoinTypeLeftOuter = "LEFT OUTER JOIN"

// ColumnRecord is one entry of column_metadata.json.
// ColumnName is "table.column" and is unique within a run.
type ColumnRecord struct {
	ColumnName string         `json:"column_name"`
	ColumnDesc string         `json:"column_desc"`
	Metadata   ColumnMetadata `json:"metadata"`
	Examples   []string       `json:"examples"` // Up to the configured limit, nulls excluded
}

// ColumnMetadata describes the column's shape and candidate joins.
type ColumnMetadata struct {
	Type         string `json:"type"` // Always RecordTypeColumn
	TableName    string `json:"table_name"`
	DataType     string `json:"data_type"` // Declared type, upper-cased
	Nullable     bool   `json:"nullable"`
	IsPrimaryKey bool   `json:"is_primary_key"`
	// IsForeignKey is always false. Foreign keys are read for
	// table_relationship.yaml but have never been reflected here, and
	// consumers of the existing artifacts rely on that.
	IsForeignKey bool            `json:"is_foreign_key"`
	Joins        []JoinCandidate `json:"joins"`
}

// JoinCandidate names another configured table sharing a column name.
type JoinCandidate struct {
	Table    string `json:"table"`
	On       string `json:"on"`
	JoinType string `json:"join_type"`
}

// QualifiedColumnName returns the "table.column" identity of a column.
func QualifiedColumnName(table, column string) string {
	return fmt.Sprintf("%s.%s", table, column)
}
