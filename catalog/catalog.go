// Package catalog is the narrow view of the data engine the document builders
// need: which collections exist and how they are described.
package catalog

import (
	"context"
	"errors"
	"fmt"
)

// ErrCollectionNotFound is returned when a collection id is unknown.
var ErrCollectionNotFound = errors.New("collection not found")

// Info describes one collection.
type Info struct {
	ID          string `bson:"_id" yaml:"id"`
	Title       string `bson:"title" yaml:"title"`
	Description string `bson:"description" yaml:"description"`
}

// Catalog lists the collections published by a service.
type Catalog interface {
	Collections(ctx context.Context) ([]Info, error)
	Collection(ctx context.Context, id string) (Info, error)
}

// Static is an in-memory catalog with a fixed collection order.
type Static struct {
	infos []Info
	index map[string]int
}

// NewStatic returns a catalog serving infos in the given order. Duplicate ids
// are rejected.
func NewStatic(infos ...Info) (*Static, error) {
	s := &Static{
		infos: make([]Info, 0, len(infos)),
		index: make(map[string]int, len(infos)),
	}
	for _, info := range infos {
		if info.ID == "" {
			return nil, errors.New("catalog: collection id is required")
		}
		if _, dup := s.index[info.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate collection %q", info.ID)
		}
		s.index[info.ID] = len(s.infos)
		s.infos = append(s.infos, info)
	}
	return s, nil
}

// Collections returns every collection.
func (s *Static) Collections(context.Context) ([]Info, error) {
	out := make([]Info, len(s.infos))
	copy(out, s.infos)
	return out, nil
}

// Collection returns the collection with the given id.
func (s *Static) Collection(_ context.Context, id string) (Info, error) {
	i, ok := s.index[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrCollectionNotFound, id)
	}
	return s.infos[i], nil
}
