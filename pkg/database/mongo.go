package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Connection is a managed handle to one logical MongoDB connection.
// Each entity domain gets its own Connection so a failure in one does
// not take down the other.
type Connection struct {
	Name string

	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// Connect opens a named logical connection and verifies it with a ping.
// Lifecycle events (connected, disconnected, error) are logged with the
// logical name attached. If the initial ping fails the client is closed
// again; a failure of that close is logged as a secondary error.
func Connect(ctx context.Context, name, uri, dbName string, log *zap.Logger) (*Connection, error) {
	monitor := &event.PoolMonitor{
		Event: func(evt *event.PoolEvent) {
			switch evt.Type {
			case event.ConnectionCreated:
				log.Debug("mongodb pool connection created", zap.String("database", name))
			case event.ConnectionClosed:
				log.Warn("mongodb connection closed", zap.String("database", name), zap.String("reason", evt.Reason))
			case event.PoolCleared:
				log.Warn("mongodb connection pool cleared", zap.String("database", name))
			}
		},
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetPoolMonitor(monitor))
	if err != nil {
		log.Error("mongodb connection error", zap.String("database", name), zap.Error(err))
		return nil, errors.Wrapf(err, "connect %s", name)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Error("mongodb connection error", zap.String("database", name), zap.Error(err))
		if cerr := client.Disconnect(context.Background()); cerr != nil {
			log.Error("failed to close mongodb connection", zap.String("database", name), zap.Error(cerr))
		}
		return nil, errors.Wrapf(err, "ping %s", name)
	}

	log.Info("mongodb connection established", zap.String("database", name))

	return &Connection{
		Name:   name,
		client: client,
		db:     client.Database(dbName),
		log:    log,
	}, nil
}

// Collection returns a handle scoped to this connection's database.
func (c *Connection) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Ping verifies the connection is still alive.
func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client and logs the lifecycle event.
func (c *Connection) Close(ctx context.Context) {
	if err := c.client.Disconnect(ctx); err != nil {
		c.log.Error("failed to close mongodb connection", zap.String("database", c.Name), zap.Error(err))
		return
	}
	c.log.Warn("mongodb connection disconnected", zap.String("database", c.Name))
}
