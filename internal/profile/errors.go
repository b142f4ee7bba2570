package profile

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is matched by every construction failure.
var ErrInvalidProfile = errors.New("invalid profile")

// InvalidProfileError describes a required field that was missing or malformed
// when a profile was constructed.
type InvalidProfileError struct {
	Kind   Kind
	ID     string
	Field  string
	Reason string
}

func (e *InvalidProfileError) Error() string {
	msg := fmt.Sprintf("invalid %s profile", e.Kind)
	if e.ID != "" {
		msg += fmt.Sprintf(" %q", e.ID)
	}
	msg += fmt.Sprintf(": field %s", e.Field)
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	return msg
}

func (e *InvalidProfileError) Unwrap() error {
	return ErrInvalidProfile
}

func missing(kind Kind, id, field string) error {
	return &InvalidProfileError{Kind: kind, ID: id, Field: field, Reason: "is required"}
}
