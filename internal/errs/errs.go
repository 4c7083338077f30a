package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a caller supplies a value of the
	// wrong shape: an empty name, a non-string extension, and so on.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingBasePath is returned when a relative path is resolved upon a
	// base path name that has no entry.
	ErrMissingBasePath = errors.New("missing base path")
)

// InvalidArgument returns an error wrapping ErrInvalidArgument with a
// formatted description.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// MissingBasePath returns an error wrapping ErrMissingBasePath for the named
// base path.
func MissingBasePath(upon string) error {
	return fmt.Errorf("%w: %q is not set", ErrMissingBasePath, upon)
}
