package builder

import (
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/geoweaver/extension"
)

// APIBuilder merges the base API description with every extension fragment.
type APIBuilder struct {
	settings
}

// NewAPIBuilder constructs an APIBuilder.
func NewAPIBuilder(opts ...Option) *APIBuilder {
	return &APIBuilder{settings: newSettings(opts)}
}

// Build returns a new API description: a deep copy of base extended by every
// registered extension in order. base is never modified. When an extension
// fails the partially merged document is discarded.
func (b *APIBuilder) Build(base *openapi3.T) (*openapi3.T, error) {
	api, err := CloneAPI(base)
	if err != nil {
		return nil, err
	}
	b.stampInfo(api)

	for i, ext := range b.registry.All() {
		if err := ext.ExtendAPI(api); err != nil {
			failure := &extension.FailureError{
				Extension: extension.NameOf(ext, i),
				Phase:     "ExtendAPI",
				Err:       err,
			}
			b.logger.Error("extension failed to extend the api", "extension", failure.Extension, "error", err)
			return nil, failure
		}
	}
	return api, nil
}

func (b *APIBuilder) stampInfo(api *openapi3.T) {
	if b.descriptor == nil {
		return
	}
	if api.Info == nil {
		api.Info = &openapi3.Info{}
	}
	if api.Info.Title == "" {
		api.Info.Title = b.descriptor.ID()
	}
	if api.Info.Version == "" {
		api.Info.Version = b.descriptor.Version().String()
	}
}

// CloneAPI deep copies doc by serializing and parsing it again. kin-openapi
// documents are plain pointer graphs without a copy method, and the result
// must share nothing with doc.
func CloneAPI(doc *openapi3.T) (*openapi3.T, error) {
	if doc == nil {
		return nil, errors.New("base api description is nil")
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("cloning api description: %w", err)
	}
	loader := openapi3.NewLoader()
	clone, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("cloning api description: %w", err)
	}
	return clone, nil
}
