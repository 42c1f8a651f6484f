package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mhalvors/golevels/pkg/errors"
)

const (
	mongoDatabase   = "golevels"
	mongoCollection = "summaries"
)

// MongoStore archives summary tables in a MongoDB collection, one document
// per snapshot. Used by shared deployments where several machines query the
// same archive.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(mongoDatabase).Collection(mongoCollection),
	}, nil
}

// Save upserts the entry, keyed by snapshot hash.
func (s *MongoStore) Save(ctx context.Context, e Entry) error {
	if e.Snapshot == "" {
		return errors.New(errors.ErrCodeInvalidInput, "entry has no snapshot hash")
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"snapshot": e.Snapshot},
		e,
		options.Replace().SetUpsert(true))
	return err
}

// Load fetches the entry for a snapshot hash.
func (s *MongoStore) Load(ctx context.Context, snapshot string) (*Entry, error) {
	var e Entry
	err := s.coll.FindOne(ctx, bson.M{"snapshot": snapshot}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeNotFound, "no stored summary for snapshot %s", snapshot)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns provenance for every stored entry, newest first. Tables are
// projected out so listing a large archive stays cheap.
func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().
		SetProjection(bson.M{"table": 0}).
		SetSort(bson.M{"created_at": -1})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var infos []Info
	for cur.Next(ctx) {
		var e Entry
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		infos = append(infos, Info{
			Snapshot:    e.Snapshot,
			DataVersion: e.DataVersion,
			CreatedAt:   e.CreatedAt,
		})
	}
	return infos, cur.Err()
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
