package prompts

import (
	"fmt"
	"strings"
)

// ColumnContext is what the description prompt knows about a column.
type ColumnContext struct {
	Table        string
	Column       string
	DataType     string // As declared, not upper-cased
	IsPrimaryKey bool
}

// BuildColumnDescriptionPrompt creates the prompt asking for a one or two
// sentence data-dictionary description of a column. The text depends only on
// its inputs, so identical schemas produce identical prompts.
func BuildColumnDescriptionPrompt(col ColumnContext) string {
	var prompt strings.Builder

	prompt.WriteString("\nWrite a short (1–2 sentence) business-friendly description for this column:\n\n")
	prompt.WriteString(fmt.Sprintf("Table: %s\n", col.Table))
	prompt.WriteString(fmt.Sprintf("Column: %s\n", col.Column))
	prompt.WriteString(fmt.Sprintf("Data Type: %s\n", col.DataType))
	prompt.WriteString(fmt.Sprintf("Primary Key?: %s\n", boolLabel(col.IsPrimaryKey)))
	prompt.WriteString("\nWrite it as if for a professional data dictionary.\n")

	return prompt.String()
}

func boolLabel(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
