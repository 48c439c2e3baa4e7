package extension

import (
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrMergeConflict is matched by MergeConflictError.
var ErrMergeConflict = errors.New("merge conflict")

// MergeConflictError reports a key defined twice while merging in strict
// mode. The default merge policy is last-writer-wins and never returns it.
type MergeConflictError struct {
	// Kind is one of "path", "schema" or "parameter".
	Kind string
	Key  string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("%s %q is already defined", e.Kind, e.Key)
}

// Is matches ErrMergeConflict.
func (e *MergeConflictError) Is(target error) bool {
	return target == ErrMergeConflict
}

// Merger copies paths, schemas and parameters from a fragment into an API
// description.
type Merger struct {
	// Paths restricts the merged paths to the listed keys, in order. All
	// fragment paths are merged when empty.
	Paths []string
	// Strict reports duplicate keys as MergeConflictError instead of letting
	// the last writer win.
	Strict bool
}

// Merge merges fragment into dst with the default last-writer-wins policy.
func Merge(dst, fragment *openapi3.T) error {
	return Merger{}.Merge(dst, fragment)
}

// Merge copies the fragment into dst. dst is only modified when the whole
// fragment can be applied.
func (m Merger) Merge(dst, fragment *openapi3.T) error {
	if dst == nil {
		return errors.New("merge target is nil")
	}
	if fragment == nil {
		return errors.New("fragment is nil")
	}

	paths, err := m.selectPaths(fragment)
	if err != nil {
		return err
	}
	var schemas openapi3.Schemas
	var parameters openapi3.ParametersMap
	if fragment.Components != nil {
		schemas = fragment.Components.Schemas
		parameters = fragment.Components.Parameters
	}

	if m.Strict {
		if err := checkConflicts(dst, paths, schemas, parameters); err != nil {
			return err
		}
	}

	if len(paths) > 0 && dst.Paths == nil {
		dst.Paths = openapi3.NewPaths()
	}
	for _, p := range paths {
		dst.Paths.Set(p.key, p.item)
	}

	if len(schemas) == 0 && len(parameters) == 0 {
		return nil
	}
	if dst.Components == nil {
		dst.Components = &openapi3.Components{}
	}
	if len(schemas) > 0 && dst.Components.Schemas == nil {
		dst.Components.Schemas = make(openapi3.Schemas, len(schemas))
	}
	for _, name := range sortedKeys(schemas) {
		dst.Components.Schemas[name] = schemas[name]
	}
	if len(parameters) > 0 && dst.Components.Parameters == nil {
		dst.Components.Parameters = make(openapi3.ParametersMap, len(parameters))
	}
	for _, name := range sortedKeys(parameters) {
		dst.Components.Parameters[name] = parameters[name]
	}
	return nil
}

type pathEntry struct {
	key  string
	item *openapi3.PathItem
}

func (m Merger) selectPaths(fragment *openapi3.T) ([]pathEntry, error) {
	if fragment.Paths == nil {
		if len(m.Paths) > 0 {
			return nil, fmt.Errorf("fragment defines no paths, expected %v", m.Paths)
		}
		return nil, nil
	}

	keys := m.Paths
	if len(keys) == 0 {
		keys = sortedKeys(fragment.Paths.Map())
	}
	entries := make([]pathEntry, 0, len(keys))
	for _, key := range keys {
		item := fragment.Paths.Value(key)
		if item == nil {
			return nil, fmt.Errorf("fragment does not define path %q", key)
		}
		entries = append(entries, pathEntry{key: key, item: item})
	}
	return entries, nil
}

func checkConflicts(dst *openapi3.T, paths []pathEntry, schemas openapi3.Schemas, parameters openapi3.ParametersMap) error {
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		_, dup := seen[p.key]
		if dup || (dst.Paths != nil && dst.Paths.Value(p.key) != nil) {
			return &MergeConflictError{Kind: "path", Key: p.key}
		}
		seen[p.key] = struct{}{}
	}
	if dst.Components == nil {
		return nil
	}
	for _, name := range sortedKeys(schemas) {
		if _, ok := dst.Components.Schemas[name]; ok {
			return &MergeConflictError{Kind: "schema", Key: name}
		}
	}
	for _, name := range sortedKeys(parameters) {
		if _, ok := dst.Components.Parameters[name]; ok {
			return &MergeConflictError{Kind: "parameter", Key: name}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
