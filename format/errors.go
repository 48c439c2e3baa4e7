package format

import (
	"errors"
	"fmt"
)

// ErrUnsupportedRepresentation is the sentinel matched by
// UnsupportedRepresentationError.
var ErrUnsupportedRepresentation = errors.New("unsupported representation")

// UnsupportedRepresentationError reports an explicit f value that does not
// resolve to a representation of the requested document.
type UnsupportedRepresentationError struct {
	Value     string
	Supported []Format
}

func (e *UnsupportedRepresentationError) Error() string {
	names := make([]string, 0, len(e.Supported))
	for _, f := range e.Supported {
		names = append(names, f.MediaType)
	}
	return fmt.Sprintf("unsupported representation %q, supported values are %v", e.Value, names)
}

// Is matches ErrUnsupportedRepresentation.
func (e *UnsupportedRepresentationError) Is(target error) bool {
	return target == ErrUnsupportedRepresentation
}
