package extension

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Registry holds the registered extensions in registration order.
//
// Register is meant to be called during startup only. Once request handling
// starts the registry is read-only and All can be called concurrently without
// synchronisation.
type Registry struct {
	extensions []Extension
}

// NewRegistry returns a registry pre-populated with exts.
func NewRegistry(exts ...Extension) *Registry {
	r := &Registry{}
	for _, ext := range exts {
		r.Register(ext)
	}
	return r
}

// Register appends ext. Nil extensions are ignored.
func (r *Registry) Register(ext Extension) {
	if ext == nil {
		return
	}
	r.extensions = append(r.extensions, ext)
}

// All returns the registered extensions in registration order.
func (r *Registry) All() []Extension {
	if r == nil || len(r.extensions) == 0 {
		return nil
	}
	out := make([]Extension, len(r.extensions))
	copy(out, r.extensions)
	return out
}

// Len returns the number of registered extensions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.extensions)
}

// Names returns the display name of every extension in registration order.
func (r *Registry) Names() []string {
	exts := r.All()
	names := make([]string, 0, len(exts))
	for i, ext := range exts {
		names = append(names, NameOf(ext, i))
	}
	return names
}

// ConformanceClasses collects the classes contributed by every
// ConformanceExtender, preserving registration order.
func (r *Registry) ConformanceClasses() []string {
	var classes []string
	for _, ext := range r.All() {
		if ce, ok := ext.(ConformanceExtender); ok {
			classes = append(classes, ce.ConformanceClasses()...)
		}
	}
	return classes
}

// Check runs every Checker and reports all failures together. A non-nil
// result means the service must not start.
func (r *Registry) Check() error {
	var result *multierror.Error
	for i, ext := range r.All() {
		checker, ok := ext.(Checker)
		if !ok {
			continue
		}
		if err := checker.Check(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", NameOf(ext, i), err))
		}
	}
	return result.ErrorOrNil()
}
