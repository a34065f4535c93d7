package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	connectTimeout = 10 * time.Second
	opTimeout      = 5 * time.Second
)

// Mongo is the process-wide document database handle. DB is nil when no
// client could be constructed; every repository then fails with ErrUnavailable.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect opens the one database connection of the process. Failures are
// logged and never returned: requests that need the database fail on their own.
func Connect(ctx context.Context, uri, database string, logger *zap.Logger) *Mongo {
	m := &Mongo{}
	if uri == "" {
		logger.Error("Error connecting to MongoDB", zap.String("reason", "MONGO_URI is not set"))
		return m
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("Error connecting to MongoDB", zap.Error(err))
		return m
	}
	m.Client = client
	m.DB = client.Database(database)

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Error("Error connecting to MongoDB", zap.Error(err))
		return m
	}
	logger.Info("Connected to MongoDB", zap.String("database", database))

	if err := m.ensureIndexes(ctx); err != nil {
		logger.Warn("could not create indexes", zap.Error(err))
	}
	return m
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.DB.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = m.DB.Collection("follows").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "task_id", Value: 1}},
		Options: options.Index().SetName("user_task_unique").SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = m.DB.Collection("texttags").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("user_created"),
	})
	return err
}

// Disconnect closes the client if one was opened.
func (m *Mongo) Disconnect(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}

func (m *Mongo) Users() Users       { return &mongoUsers{m: m} }
func (m *Mongo) Tasks() Tasks       { return &mongoTasks{m: m} }
func (m *Mongo) TextTags() TextTags { return &mongoTextTags{m: m} }

func (m *Mongo) collection(name string) (*mongo.Collection, error) {
	if m.DB == nil {
		return nil, ErrUnavailable
	}
	return m.DB.Collection(name), nil
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func notFound(err error) error {
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}
