// Package sql holds checks applied to SQL fragments before they are
// composed into catalog queries.
package sql

import (
	"fmt"
	"strings"
	"unicode"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/ekaya-inc/metaseed/pkg/apperrors"
)

// MaxIdentifierLength is the longest identifier any supported dialect accepts
// (SQL Server sysname is 128 characters).
const MaxIdentifierLength = 128

// CheckIdentifier validates a table reference taken from configuration.
// It accepts "table" and "schema.table". Identifiers are always quoted by the
// readers, so this only rejects names that could not be real identifiers or
// that libinjection recognizes as an injection attempt.
//
// Example:
//
//	CheckIdentifier("dbo.Ponpure_Schedules") // nil
//	CheckIdentifier("x'; DROP TABLE users--") // wraps apperrors.ErrUnsafeIdentifier
func CheckIdentifier(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", apperrors.ErrUnsafeIdentifier)
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return fmt.Errorf("%w: %q has more than two parts", apperrors.ErrUnsafeIdentifier, name)
	}

	for _, part := range parts {
		if part == "" {
			return fmt.Errorf("%w: %q has an empty part", apperrors.ErrUnsafeIdentifier, name)
		}
		if len(part) > MaxIdentifierLength {
			return fmt.Errorf("%w: %q exceeds %d characters", apperrors.ErrUnsafeIdentifier, part, MaxIdentifierLength)
		}
		for _, r := range part {
			if unicode.IsControl(r) || r == ';' || r == '\'' || r == '"' || r == '`' {
				return fmt.Errorf("%w: %q contains %q", apperrors.ErrUnsafeIdentifier, name, r)
			}
		}
	}

	if strings.Contains(name, "--") || strings.Contains(name, "/*") {
		return fmt.Errorf("%w: %q contains a comment marker", apperrors.ErrUnsafeIdentifier, name)
	}

	if isSQLi, fingerprint := libinjection.IsSQLi(name); isSQLi {
		return fmt.Errorf("%w: %q matches injection fingerprint %s", apperrors.ErrUnsafeIdentifier, name, fingerprint)
	}

	return nil
}

// SplitQualified splits "schema.table" into its parts. An unqualified name
// returns an empty schema.
func SplitQualified(name string) (schema, table string) {
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}
