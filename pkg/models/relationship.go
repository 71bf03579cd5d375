package models

import "fmt"

// CardinalityManyToOne is the cardinality recorded for every foreign key.
const CardinalityManyToOne = "ManyToOne"

// RelationshipRecord is one foreign key between two configured tables.
// Left and right column lists always hold exactly one column; composite
// keys produce one record per column pair.
type RelationshipRecord struct {
	LeftTable    string   `yaml:"left_table"`
	LeftColumns  []string `yaml:"left_columns"`
	RightTable   string   `yaml:"right_table"`
	RightColumns []string `yaml:"right_columns"`
	Cardinality  string   `yaml:"cardinality"`
	Description  string   `yaml:"description"`
}

// RelationshipDocument is the top-level shape of table_relationship.yaml.
type RelationshipDocument struct {
	Relationships []RelationshipRecord `yaml:"RELATIONSHIPS"`
}

// NewRelationshipRecord builds the record for a foreign key from
// leftTable.leftColumn to rightTable.rightColumn.
func NewRelationshipRecord(leftTable, leftColumn, rightTable, rightColumn string) RelationshipRecord {
	return RelationshipRecord{
		LeftTable:    leftTable,
		LeftColumns:  []string{leftColumn},
		RightTable:   rightTable,
		RightColumns: []string{rightColumn},
		Cardinality:  CardinalityManyToOne,
		Description:  fmt.Sprintf("%s → %s via %s", leftTable, rightTable, leftColumn),
	}
}
