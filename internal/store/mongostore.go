package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const blobCollectionName = "blobs"

// blobDocument is the shape of one stored blob. The storage key doubles as
// the document ID so Save is a straight upsert.
type blobDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// mongoStore persists blobs in a MongoDB collection, one document per key.
// This is the optional cloud backend for coaches who want their data to
// survive the machine.
type mongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the blobs collection of
// the named database.
func NewMongoStore(uri, dbName string) (Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	// Verify the connection before handing the store out.
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Printf("Mongo blob store connected (db=%s)", dbName)
	return &mongoStore{
		client:     client,
		collection: client.Database(dbName).Collection(blobCollectionName),
	}, nil
}

func (m *mongoStore) Load(ctx context.Context, key string) ([]byte, error) {
	var doc blobDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoValue
	}
	if err != nil {
		return nil, err
	}
	return doc.Value, nil
}

func (m *mongoStore) Save(ctx context.Context, key string, value []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, blobDocument{Key: key, Value: value}, opts)
	return err
}

func (m *mongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
