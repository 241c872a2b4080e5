package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore writes documents into a MongoDB database, one Mongo
// collection per Collection.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore wraps an existing database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	if db == nil {
		panic("storage: mongo database required")
	}
	return &MongoStore{db: db}
}

// ConnectMongo dials uri and returns the client together with a store bound
// to dbName. Callers own the client and must Disconnect it.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *MongoStore, error) {
	if strings.TrimSpace(uri) == "" {
		return nil, nil, errors.New("storage: mongo uri required")
	}
	if strings.TrimSpace(dbName) == "" {
		return nil, nil, errors.New("storage: mongo database name required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("storage: mongo connect: %w", err)
	}
	return client, NewMongoStore(client.Database(dbName)), nil
}

// Insert stores doc and returns the inserted id as a hex string.
func (s *MongoStore) Insert(ctx context.Context, collection Collection, doc Document) (id string, err error) {
	if err := checkInsert(collection, doc); err != nil {
		return "", err
	}
	ctx, span := startSpan(ctx, DriverMongo, "insert", collection)
	defer func() { endSpan(span, err) }()

	res, err := s.db.Collection(string(collection)).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", fmt.Errorf("storage: mongo insert: %w", err)
	}
	switch v := res.InsertedID.(type) {
	case primitive.ObjectID:
		return v.Hex(), nil
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

// ListCollectionNames lists every collection in the database.
func (s *MongoStore) ListCollectionNames(ctx context.Context) (names []string, err error) {
	ctx, span := startSpan(ctx, DriverMongo, "list_collections", "")
	defer func() { endSpan(span, err) }()

	names, err = s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("storage: mongo list collections: %w", err)
	}
	return names, nil
}
