package mssql

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
)

// quoteName quotes an identifier the way QUOTENAME() does: square
// brackets, with ] escaped as ]].
func quoteName(identifier string) string {
	escaped := strings.ReplaceAll(identifier, "]", "]]")
	return fmt.Sprintf("[%s]", escaped)
}

// binaryTypes render as 0x-prefixed hex. Casting them to NVARCHAR would
// reinterpret the bytes as UTF-16, and image does not cast at all.
// rowversion columns report DATA_TYPE "timestamp".
var binaryTypes = map[string]bool{
	"binary":     true,
	"varbinary":  true,
	"image":      true,
	"timestamp":  true,
	"rowversion": true,
}

// exampleExpr returns values as text so every column type scans as a string.
func exampleExpr(quotedColumn, dataType string) string {
	if binaryTypes[strings.ToLower(dataType)] {
		return fmt.Sprintf("CONVERT(VARCHAR(MAX), CONVERT(VARBINARY(MAX), %s), 1)", quotedColumn)
	}
	return fmt.Sprintf("CAST(%s AS NVARCHAR(MAX))", quotedColumn)
}

// Dialect is the SQL Server catalog dialect: @pN parameters and TOP (n).
var Dialect = datasource.Dialect{
	Name:        "mssql",
	Placeholder: sq.AtP,
	QuoteIdent:  quoteName,
	ExampleExpr: exampleExpr,
	UseTop:      true,
}
