package domain

import "fmt"

// ValidationError reports a malformed field on an incoming record. It is
// surfaced to callers with the field name so the API layer can render
// field-level detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
