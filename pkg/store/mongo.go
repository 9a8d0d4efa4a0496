package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/framecast/pkg/host"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "framecast"
	DefaultMongoCollection = "conversions"
)

// MongoStore keeps records in a MongoDB collection. Documents are stored
// as their JSON encoding, and a TTL index on expires_at lets the server
// drop expired records.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri, pings the server and ensures the TTL
// index. Empty database or collection names use the defaults.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}
	if collection == "" {
		collection = DefaultMongoCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := &MongoStore{client: client, coll: client.Database(database).Collection(collection)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", id, err)
	}
	if rec.IsExpired() {
		return nil, ErrNotFound
	}
	if err := decodePayload(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *MongoStore) Put(ctx context.Context, rec *Record) error {
	stored := *rec
	if rec.Document != nil {
		data, err := json.Marshal(rec.Document)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		stored.Payload = data
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": rec.ID}, &stored, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert %s: %w", rec.ID, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// List returns record summaries without their documents.
func (s *MongoStore) List(ctx context.Context, limit int) ([]*Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"document": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.M{"expires_at": bson.M{"$gt": time.Now()}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	var out []*Record
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return out, nil
}

// Cleanup deletes expired records now rather than waiting for the TTL
// monitor.
func (s *MongoStore) Cleanup(ctx context.Context) (int, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now()}})
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	return int(res.DeletedCount), nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func decodePayload(rec *Record) error {
	if len(rec.Payload) == 0 {
		return nil
	}
	var doc host.Document
	if err := json.Unmarshal(rec.Payload, &doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	rec.Document = &doc
	rec.Payload = nil
	return nil
}

var _ Store = (*MongoStore)(nil)
