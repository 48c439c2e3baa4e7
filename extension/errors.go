package extension

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceLoad is matched by ResourceLoadError.
	ErrResourceLoad = errors.New("resource load failed")
	// ErrExtensionFailure is matched by FailureError.
	ErrExtensionFailure = errors.New("extension failed")
)

// ResourceLoadError reports a fragment resource that is missing or cannot be
// parsed. It is fatal at startup and never retried.
type ResourceLoadError struct {
	Resource string
	Err      error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("failed to load api fragment %q: %v", e.Resource, e.Err)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}

// Is matches ErrResourceLoad.
func (e *ResourceLoadError) Is(target error) bool {
	return target == ErrResourceLoad
}

// FailureError reports an extension whose ExtendAPI or ExtendCollection call
// failed. The document being assembled is discarded.
type FailureError struct {
	Extension string
	Phase     string
	Err       error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%s failed during %s: %v", e.Extension, e.Phase, e.Err)
}

func (e *FailureError) Unwrap() error {
	return e.Err
}

// Is matches ErrExtensionFailure.
func (e *FailureError) Is(target error) bool {
	return target == ErrExtensionFailure
}
