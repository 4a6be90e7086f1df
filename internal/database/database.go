// FilePath: internal/database/database.go
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/emogo-app/emogo-server/internal/config"
	nuts "github.com/vaudience/go-nuts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB is the process-wide handle to the document store. It is opened once
// at startup and injected into every repository.
type DB interface {
	Close(ctx context.Context) error
	Ping(ctx context.Context) error
	Collection() *mongo.Collection
}

// MongoDB wraps a MongoDB client scoped to one database and collection
type MongoDB struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoDB connects to MongoDB and verifies the connection with a ping
func NewMongoDB(cfg config.MongoConfig) (DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("error connecting to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("error pinging MongoDB: %w", err)
	}

	nuts.L.Infof("[MongoDB] Connected, using database %s, collection %s", cfg.Database, cfg.Collection)
	return &MongoDB{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Implementation of DB interface for MongoDB
func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Collection() *mongo.Collection {
	return m.collection
}
