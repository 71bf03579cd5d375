package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildColumnDescriptionPrompt(t *testing.T) {
	prompt := BuildColumnDescriptionPrompt(ColumnContext{
		Table:        "Ponpure_LeadDetails",
		Column:       "LeadId",
		DataType:     "int",
		IsPrimaryKey: true,
	})

	expected := "\nWrite a short (1–2 sentence) business-friendly description for this column:\n\n" +
		"Table: Ponpure_LeadDetails\n" +
		"Column: LeadId\n" +
		"Data Type: int\n" +
		"Primary Key?: True\n" +
		"\nWrite it as if for a professional data dictionary.\n"
	assert.Equal(t, expected, prompt)
}

func TestBuildColumnDescriptionPrompt_NotPrimaryKey(t *testing.T) {
	prompt := BuildColumnDescriptionPrompt(ColumnContext{
		Table:    "Ponpure_Schedules",
		Column:   "ScheduleDate",
		DataType: "datetime",
	})

	assert.Contains(t, prompt, "Primary Key?: False\n")
	assert.Contains(t, prompt, "Data Type: datetime\n")
}

func TestBuildColumnDescriptionPrompt_Deterministic(t *testing.T) {
	col := ColumnContext{Table: "t", Column: "c", DataType: "nvarchar"}
	assert.Equal(t, BuildColumnDescriptionPrompt(col), BuildColumnDescriptionPrompt(col))
}
