package services

import (
	"github.com/ekaya-inc/metaseed/pkg/models"
)

// JoinInferrer proposes joins purely by exact, case-sensitive column-name
// equality across the configured tables. Declared foreign keys play no part.
type JoinInferrer struct {
	tables  []string
	columns map[string]map[string]bool
	keys    map[string]map[string]bool
}

// NewJoinInferrer indexes column and primary-key names per table.
// Candidate order follows the order of schemas.
func NewJoinInferrer(schemas []TableSchema) *JoinInferrer {
	j := &JoinInferrer{
		tables:  make([]string, 0, len(schemas)),
		columns: make(map[string]map[string]bool, len(schemas)),
		keys:    make(map[string]map[string]bool, len(schemas)),
	}
	for _, s := range schemas {
		j.tables = append(j.tables, s.Name)

		cols := make(map[string]bool, len(s.Columns))
		for _, c := range s.Columns {
			cols[c.ColumnName] = true
		}
		j.columns[s.Name] = cols

		pks := make(map[string]bool, len(s.PrimaryKeys))
		for _, pk := range s.PrimaryKeys {
			pks[pk] = true
		}
		j.keys[s.Name] = pks
	}
	return j
}

// CandidatesFor returns every other configured table that has a column or
// primary key named column. The result is never nil.
func (j *JoinInferrer) CandidatesFor(table, column string) []models.JoinCandidate {
	candidates := []models.JoinCandidate{}
	for _, other := range j.tables {
		if other == table {
			continue
		}
		if j.columns[other][column] || j.keys[other][column] {
			candidates = append(candidates, models.JoinCandidate{
				Table:    other,
				On:       column,
				JoinType: models.JoinTypeLeftOuter,
			})
		}
	}
	return candidates
}
