package apperrors

import "errors"

var (
	ErrNoTables         = errors.New("no tables configured")
	ErrTableNotFound    = errors.New("table not found")
	ErrUnknownDialect   = errors.New("unknown datasource type")
	ErrUnknownProvider  = errors.New("unknown llm provider")
	ErrUnsafeIdentifier = errors.New("unsafe identifier")
)
