package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/cinegraph/cinegraph-backend/internal/platform/envutil"
	"github.com/cinegraph/cinegraph-backend/internal/platform/logger"
)

// Client holds the connection to the movie catalog database.
type Client struct {
	client     *mongo.Client
	database   string
	collection string
	log        *logger.Logger
}

func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("mongodb: logger required")
	}

	uri := envutil.Str("MONGO_URI", "mongodb://localhost:27017")
	database := envutil.Str("MONGO_DATABASE", "websitedb")
	collection := envutil.Str("MONGO_COLLECTION", "movies")
	timeout := envutil.Seconds("MONGO_TIMEOUT_SECONDS", 10*time.Second)

	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	return &Client{
		client:     client,
		database:   database,
		collection: collection,
		log:        log.With("client", "MongoDB"),
	}, nil
}

// Movies returns the catalog collection handle.
func (c *Client) Movies() *mongo.Collection {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Database(c.database).Collection(c.collection)
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	return err
}
