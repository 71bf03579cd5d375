package models

// Catalog is the full output of one run, ready to be written as artifacts.
type Catalog struct {
	Columns       []ColumnRecord
	Tables        []TableRecord
	Relationships []RelationshipRecord
}

// RunSummary reports what a run produced.
type RunSummary struct {
	Tables               int
	Columns              int
	FallbackDescriptions int
	Relationships        int
	SkippedForeignKeys   int // Foreign keys whose referenced table is not configured
}
