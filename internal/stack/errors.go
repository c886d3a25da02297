package stack

import "fmt"

// ValidationError reports a violated parameter or graph invariant.
// Field uses the config key path, e.g. "network.subnets[1].cidr".
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// invalid builds a ValidationError with a formatted reason.
func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
