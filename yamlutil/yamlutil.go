// Package yamlutil renders values as YAML using their JSON field names and
// key order, so the YAML representation of a document mirrors its JSON one.
package yamlutil

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/drblury/geoweaver/jsonutil"
)

// Marshal encodes v to JSON first and converts the result to block-style
// YAML. Types with custom JSON marshalling, such as OpenAPI documents, keep
// their JSON shape.
func Marshal(v any) ([]byte, error) {
	data, err := jsonutil.Marshal(v)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// FromJSON converts a JSON document to YAML, preserving key order.
func FromJSON(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("yamlutil: parsing json: %w", err)
	}
	resetStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("yamlutil: encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yamlutil: encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// ToJSON converts a YAML document to JSON.
func ToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("yamlutil: parsing yaml: %w", err)
	}
	return jsonutil.Marshal(v)
}

// resetStyle drops the flow style the JSON parser assigns so the encoder
// emits block YAML. Strings keep being quoted when YAML requires it.
func resetStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		n.Style = 0
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			n.Style = 0
		}
	}
	for _, child := range n.Content {
		resetStyle(child)
	}
}
