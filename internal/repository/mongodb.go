package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EventsCollection is the journal collection name.
const EventsCollection = "events"

const eventsTTLIndex = "timestamp_ttl"

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns the journal's connection settings. The journal is
// append-mostly and low volume, so the pool is kept small.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            20,
		MinPoolSize:            2,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and collection access.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Events   *mongo.Collection
}

// NewMongoDB connects with the default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig connects, verifies the connection and ensures indexes.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout).
		SetRetryWrites(true).
		SetRetryReads(true)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(databaseName)
	m := &MongoDB{
		Client:   client,
		Database: db,
		Events:   db.Collection(EventsCollection),
	}

	if err := m.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return m, nil
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	_, err := m.Events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "request_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	return err
}

// SetEventsTTL replaces the expiry index on the events collection.
func (m *MongoDB) SetEventsTTL(ctx context.Context, ttl time.Duration) error {
	if _, err := m.Events.Indexes().DropOne(ctx, eventsTTLIndex); err != nil && !isMissingIndex(err) {
		return err
	}

	_, err := m.Events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().
			SetName(eventsTTLIndex).
			SetExpireAfterSeconds(int32(ttl.Seconds())),
	})
	return err
}

// isMissingIndex matches NamespaceNotFound (26) and IndexNotFound (27).
func isMissingIndex(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && (cmdErr.Code == 26 || cmdErr.Code == 27)
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
