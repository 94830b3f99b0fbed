package composite

import (
	"errors"
	"fmt"
)

// ErrNoImages is returned when there is no candidate image to merge.
var ErrNoImages = errors.New("no candidate images found")

// DecodeError reports a source file that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %q: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
