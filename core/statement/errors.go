package statement

import (
	"errors"
	"fmt"
)

// Kinds of configuration failure. A *ConfigurationError unwraps to exactly one
// of these, so callers can branch with errors.Is.
var (
	ErrMissingTable         = errors.New("no table resolvable for statement")
	ErrEmptyColumnList      = errors.New("statement has no valid columns")
	ErrEmptySetList         = errors.New("update has no valid assignments")
	ErrMalformedFilter      = errors.New("malformed filter")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrRawPlaceholder       = errors.New("placeholder in raw SQL text")
)

// ConfigurationError reports why a Config could not be turned into SQL.
type ConfigurationError struct {
	Op     Operation
	Kind   error
	Detail string
}

func (e *ConfigurationError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Kind
}

func configError(op Operation, kind error, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
