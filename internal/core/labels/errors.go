package labels

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks caller-contract violations. Degenerate input
// (empty or blank candidates) is never reported as an error.
var ErrInvalidArgument = errors.New("invalid argument")

var (
	ErrNilConcept  = fmt.Errorf("%w: nil concept", ErrInvalidArgument)
	ErrForeignName = fmt.Errorf("%w: selected name does not belong to the concept", ErrInvalidArgument)
)
