package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Finder is the subset of *mongo.Collection used by Mongo.
type Finder interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
}

// Mongo reads collection descriptions from a MongoDB collection whose
// documents carry the collection id in _id.
type Mongo struct {
	coll Finder
}

// NewMongo wraps coll, usually client.Database(db).Collection(name).
func NewMongo(coll Finder) *Mongo {
	return &Mongo{coll: coll}
}

// Collections returns every collection sorted by id.
func (m *Mongo) Collections(ctx context.Context) ([]Info, error) {
	cursor, err := m.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("catalog: listing collections: %w", err)
	}

	var infos []Info
	if err := cursor.All(ctx, &infos); err != nil {
		return nil, fmt.Errorf("catalog: decoding collections: %w", err)
	}
	return infos, nil
}

// Collection returns the collection with the given id.
func (m *Mongo) Collection(ctx context.Context, id string) (Info, error) {
	var info Info
	err := m.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&info)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Info{}, fmt.Errorf("%w: %s", ErrCollectionNotFound, id)
	}
	if err != nil {
		return Info{}, fmt.Errorf("catalog: loading collection %s: %w", id, err)
	}
	return info, nil
}
