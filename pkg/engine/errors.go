package engine

import (
	"errors"
	"fmt"
)

// ErrNoProfile is returned when Compute is called without a profile
var ErrNoProfile = errors.New("no customer profile supplied")

// ProfileError reports a structurally invalid profile field
type ProfileError struct {
	Field  string
	Reason string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid profile field %s: %s", e.Field, e.Reason)
}
