package workflow

import (
	"fmt"

	"github.com/jlaasonen/precinct/internal/errors"
)

// ErrNotFound signals that the referenced record does not exist.
var ErrNotFound = errors.NewSentinel("record not found")

// ValidationError reports malformed, missing, or too-short input. It carries
// field and reason detail for caller display.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid constructs a ValidationError for the given field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// RuleViolation reports a broken domain rule such as an exceeded rejection
// threshold, crime-level bail ineligibility, or a missing prerequisite
// approval. It carries rule and reason detail for caller display.
type RuleViolation struct {
	Rule   string
	Reason string
}

func (e *RuleViolation) Error() string {
	return fmt.Sprintf("rule violation (%s): %s", e.Rule, e.Reason)
}

// Violation constructs a RuleViolation for the given rule.
func Violation(rule, reason string) error {
	return &RuleViolation{Rule: rule, Reason: reason}
}

// PermissionDenied reports a capability mismatch for the attempted
// transition. It intentionally carries no detail so that the boundary returns
// a generic denial without leaking internal state.
type PermissionDenied struct{}

func (e *PermissionDenied) Error() string {
	return "permission denied"
}

// Denied constructs a PermissionDenied error.
func Denied() error {
	return &PermissionDenied{}
}

// StateConflict reports an operation attempted from a status that no longer
// matches, including transactions that lost a race. Like PermissionDenied it
// carries no internal state.
type StateConflict struct{}

func (e *StateConflict) Error() string {
	return "state conflict"
}

// Conflict constructs a StateConflict error.
func Conflict() error {
	return &StateConflict{}
}
