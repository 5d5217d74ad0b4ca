package reshape

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("invalid transform result")
	// ErrNoMatch is matched by every *NoMatchError.
	ErrNoMatch = errors.New("pattern did not match")
)

// ValidationError reports a transform result that cannot be applied.
type ValidationError struct {
	Rule    int
	Pattern string
	// Path is the matched source path.
	Path string
	// Destination is the path the transform asked to write to.
	Destination string
	Reason      string
	Err         error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rule %d (%s) at %q: %s", e.Rule, e.Pattern, e.Path, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NoMatchError is returned in strict mode for a rule whose pattern matched
// no path of the source document.
type NoMatchError struct {
	Rule    int
	Pattern string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("pattern /%s/ did not match any path in the provided object", e.Pattern)
}

func (e *NoMatchError) Is(target error) bool {
	return target == ErrNoMatch
}
