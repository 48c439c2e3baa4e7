package catalog

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestStatic(t *testing.T) {
	s, err := NewStatic(
		Info{ID: "roads", Title: "Roads"},
		Info{ID: "rivers", Title: "Rivers"},
	)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	infos, _ := s.Collections(context.Background())
	if len(infos) != 2 || infos[0].ID != "roads" || infos[1].ID != "rivers" {
		t.Fatalf("expected configured order, got %v", infos)
	}

	info, err := s.Collection(context.Background(), "rivers")
	if err != nil || info.Title != "Rivers" {
		t.Fatalf("unexpected lookup result %v, %v", info, err)
	}

	if _, err := s.Collection(context.Background(), "lakes"); !errors.Is(err, ErrCollectionNotFound) {
		t.Fatalf("expected ErrCollectionNotFound, got %v", err)
	}
}

func TestStaticValidation(t *testing.T) {
	if _, err := NewStatic(Info{}); err == nil {
		t.Fatal("expected error for empty id")
	}
	if _, err := NewStatic(Info{ID: "a"}, Info{ID: "a"}); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

type stubFinder struct {
	docs    []any
	findErr error
	one     any
	oneErr  error
	filter  any
}

func (s *stubFinder) Find(_ context.Context, filter any, _ ...*options.FindOptions) (*mongo.Cursor, error) {
	s.filter = filter
	if s.findErr != nil {
		return nil, s.findErr
	}
	return mongo.NewCursorFromDocuments(s.docs, nil, nil)
}

func (s *stubFinder) FindOne(_ context.Context, filter any, _ ...*options.FindOneOptions) *mongo.SingleResult {
	s.filter = filter
	doc := s.one
	if doc == nil {
		doc = bson.D{}
	}
	return mongo.NewSingleResultFromDocument(doc, s.oneErr, nil)
}

func TestMongoCollections(t *testing.T) {
	finder := &stubFinder{docs: []any{
		bson.D{{Key: "_id", Value: "rivers"}, {Key: "title", Value: "Rivers"}},
		bson.D{{Key: "_id", Value: "roads"}, {Key: "title", Value: "Roads"}, {Key: "description", Value: "OSM roads"}},
	}}

	infos, err := NewMongo(finder).Collections(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 collections, got %d", len(infos))
	}
	if infos[1].ID != "roads" || infos[1].Description != "OSM roads" {
		t.Fatalf("unexpected decoded collection %+v", infos[1])
	}
}

func TestMongoCollectionsError(t *testing.T) {
	sentinel := errors.New("connection refused")
	_, err := NewMongo(&stubFinder{findErr: sentinel}).Collections(context.Background())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
}

func TestMongoCollection(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		finder := &stubFinder{one: bson.D{{Key: "_id", Value: "roads"}, {Key: "title", Value: "Roads"}}}
		info, err := NewMongo(finder).Collection(context.Background(), "roads")
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
		if info.Title != "Roads" {
			t.Fatalf("unexpected title %q", info.Title)
		}
	})

	t.Run("not found", func(t *testing.T) {
		finder := &stubFinder{oneErr: mongo.ErrNoDocuments}
		_, err := NewMongo(finder).Collection(context.Background(), "lakes")
		if !errors.Is(err, ErrCollectionNotFound) {
			t.Fatalf("expected ErrCollectionNotFound, got %v", err)
		}
	})
}
