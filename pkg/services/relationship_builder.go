package services

import (
	"github.com/ekaya-inc/metaseed/pkg/models"
)

// BuildRelationships turns declared foreign keys into relationship records,
// keeping only those whose referenced table is configured. The second return
// value counts foreign keys dropped for pointing outside the configured set.
func BuildRelationships(schemas []TableSchema) ([]models.RelationshipRecord, int) {
	records := []models.RelationshipRecord{}
	skipped := 0

	for _, s := range schemas {
		for _, fk := range s.ForeignKeys {
			target, ok := findConfiguredTable(schemas, fk.TargetSchema, fk.TargetTable)
			if !ok {
				skipped++
				continue
			}
			records = append(records, models.NewRelationshipRecord(s.Name, fk.SourceColumn, target, fk.TargetColumn))
		}
	}

	return records, skipped
}

// findConfiguredTable matches a referenced table against the configured
// tables by name. A configured table without a schema matches any schema.
func findConfiguredTable(schemas []TableSchema, targetSchema, targetTable string) (string, bool) {
	for _, s := range schemas {
		if s.Ref.Name != targetTable {
			continue
		}
		if s.Ref.Schema == "" || targetSchema == "" || s.Ref.Schema == targetSchema {
			return s.Name, true
		}
	}
	return "", false
}
