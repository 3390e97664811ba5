package types

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding is returned when content is not valid UTF-8 text.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// InputError reports that a file could not be read or decoded.
// It is kept distinct from Result: a scan never ran for the file.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is or wraps an *InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
