// Package format negotiates which representation a document is rendered in.
//
// A Format is selected either explicitly through the f query parameter, which
// is matched against the alias table of every registered format, or through
// the Accept header. Explicit values that match nothing are reported as
// UnsupportedRepresentationError and never downgraded to the default.
package format

import "strings"

// QueryParam is the query parameter used to select a representation.
const QueryParam = "f"

// Format describes one representation a document can be serialized to.
type Format struct {
	// Name is the short identifier, e.g. "json".
	Name string
	// MediaType is advertised in link types and the Content-Type header.
	MediaType string
	// Aliases are additional values accepted for the f query parameter.
	Aliases []string
	// Title is used for links pointing at this representation.
	Title string
}

// Built-in representations.
var (
	JSON = Format{
		Name:      "json",
		MediaType: "application/json",
		Title:     "JSON",
	}
	YAML = Format{
		Name:      "yaml",
		MediaType: "application/x-yaml",
		Aliases:   []string{"application/yaml", "text/yaml"},
		Title:     "YAML",
	}
	HTML = Format{
		Name:      "html",
		MediaType: "text/html",
		Title:     "HTML",
	}
)

// Defaults is the representation set every core document supports, in the
// order their links are emitted.
func Defaults() []Format {
	return []Format{JSON, YAML, HTML}
}

// IsZero reports whether f is the zero Format.
func (f Format) IsZero() bool {
	return f.Name == "" && f.MediaType == ""
}

// Matches reports whether value selects f, either through its name, media
// type, or one of its aliases. Comparison is case-insensitive.
func (f Format) Matches(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if strings.EqualFold(value, f.Name) || strings.EqualFold(value, f.MediaType) {
		return true
	}
	for _, alias := range f.Aliases {
		if strings.EqualFold(value, alias) {
			return true
		}
	}
	return false
}

// String returns the format name.
func (f Format) String() string {
	return f.Name
}
