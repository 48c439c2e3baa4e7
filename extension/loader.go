package extension

import (
	"errors"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"
)

// FragmentLoader loads the OpenAPI fragment owned by one extension.
//
// The parsed document is mutable and gets merged into per-request API
// descriptions, so Load parses the resource again on every call instead of
// handing out a shared tree. A FragmentLoader holds no mutable state and is
// safe for concurrent use.
type FragmentLoader struct {
	fsys fs.FS
	name string
}

// NewFragmentLoader returns a loader reading name from fsys, typically an
// embed.FS packaged with the extension.
func NewFragmentLoader(fsys fs.FS, name string) *FragmentLoader {
	return &FragmentLoader{fsys: fsys, name: name}
}

// Resource returns the name of the backing resource.
func (l *FragmentLoader) Resource() string {
	return l.name
}

// Load reads and parses the fragment. YAML and JSON resources are accepted.
func (l *FragmentLoader) Load() (*openapi3.T, error) {
	if l == nil || l.fsys == nil {
		return nil, &ResourceLoadError{Err: errors.New("fragment loader is not configured")}
	}

	data, err := fs.ReadFile(l.fsys, l.name)
	if err != nil {
		return nil, &ResourceLoadError{Resource: l.name, Err: err}
	}
	return ParseFragment(l.name, data)
}

// MustLoad is Load for the startup path: it panics when the fragment cannot
// be loaded.
func (l *FragmentLoader) MustLoad() *openapi3.T {
	doc, err := l.Load()
	if err != nil {
		panic(err)
	}
	return doc
}

// Check loads the fragment once and discards it.
func (l *FragmentLoader) Check() error {
	_, err := l.Load()
	return err
}

// ParseFragment parses data into a fresh document. The resource name is only
// used for error reporting.
func ParseFragment(resource string, data []byte) (*openapi3.T, error) {
	if len(data) == 0 {
		return nil, &ResourceLoadError{Resource: resource, Err: errors.New("resource is empty")}
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, &ResourceLoadError{Resource: resource, Err: err}
	}
	if doc.Paths == nil && doc.Components == nil {
		return nil, &ResourceLoadError{Resource: resource, Err: errors.New("fragment defines neither paths nor components")}
	}
	return doc, nil
}
