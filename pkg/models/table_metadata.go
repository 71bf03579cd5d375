package models

import "fmt"

// TableRecord is one entry of table_metadata.json.
type TableRecord struct {
	ID       string        `json:"id"`
	Document string        `json:"document"`
	Metadata TableMetadata `json:"metadata"`
}

// TableMetadata carries the table's key columns.
// JoinGuidance is reserved and always empty.
type TableMetadata struct {
	Type         string   `json:"type"` // Always RecordTypeTable
	PrimaryKey   []string `json:"primary_key"`
	JoinGuidance []string `json:"join_guidance"`
}

// TableDocument is the placeholder document text for a table.
func TableDocument(table string) string {
	return fmt.Sprintf("%s table — contains important business data.", table)
}
