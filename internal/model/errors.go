package model

import "github.com/cockroachdb/errors"

// ErrSchema marks every error caused by an invalid datatype description. Such
// errors are reported before any output is produced.
var ErrSchema = errors.New("invalid schema")

// Schemaf returns a schema error.
func Schemaf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrSchema)
}

// SchemaHintf returns a schema error carrying a hint on how to fix it.
func SchemaHintf(hint, format string, args ...any) error {
	return errors.WithHint(Schemaf(format, args...), hint)
}
