// Package db owns the Mongo and Redis client lifecycle. A single Store is
// constructed at startup, handed to every feature package, and closed on
// shutdown; no package-level handles exist.
package db

import (
	"context"
	"time"

	"github.com/Crax-AI/crax.app/internal/env"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store bundles the database clients and the collections this service
// touches. The unique indexes declared in Open are the backstop that keeps
// concurrent duplicate webhook deliveries from creating duplicate rows.
type Store struct {
	Ctx    context.Context
	Client *mongo.Client
	RDB    *redis.Client

	Profiles  *mongo.Collection
	Commits   *mongo.Collection
	Posts     *mongo.Collection
	Projects  *mongo.Collection
	Operators *mongo.Collection
	Events    *mongo.Collection
}

// Open connects to Mongo and Redis and prepares collections and indexes.
// The deployment profile picks the database name so test runs never touch
// production data.
func Open(deployment string) (*Store, error) {
	ctx := context.Background()

	client, err := mongo.Connect(
		ctx,
		options.Client().ApplyURI(env.MONGO_URI),
	)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	database := databaseName(deployment)

	s := &Store{
		Ctx:    ctx,
		Client: client,

		Profiles:  client.Database(database).Collection("profiles"),
		Commits:   client.Database(database).Collection("commits"),
		Posts:     client.Database(database).Collection("posts"),
		Projects:  client.Database(database).Collection("projects"),
		Operators: client.Database(database).Collection("operators"),
		Events:    client.Database(database).Collection("events"),
	}

	if err := s.ensureIndexes(); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	s.RDB = redis.NewClient(&redis.Options{
		Addr: env.REDIS_ADDR,
		DB:   env.REDIS_DB,
	})

	if err := s.RDB.Ping(ctx).Err(); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

func databaseName(deployment string) string {
	if deployment == "test" {
		return "crax_test"
	}
	return "crax"
}

// ensureIndexes creates the natural-key constraints the pipeline relies on.
func (s *Store) ensureIndexes() error {
	_, err := s.Commits.Indexes().CreateOne(s.Ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "repository_id", Value: 1},
			{Key: "commit_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Profiles.Indexes().CreateOne(s.Ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Projects.Indexes().CreateOne(s.Ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "github_url", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})

	return err
}

// Close releases both clients. Safe to call once at shutdown.
func (s *Store) Close() {
	if s.RDB != nil {
		_ = s.RDB.Close()
	}
	if s.Client != nil {
		_ = s.Client.Disconnect(s.Ctx)
	}
}

func (s *Store) CacheSet(key string, value []byte, ttl time.Duration) error {
	return s.RDB.Set(s.Ctx, key, value, ttl).Err()
}

func (s *Store) CacheGet(key string) ([]byte, error) {
	return s.RDB.Get(s.Ctx, key).Bytes()
}

func (s *Store) CacheDel(key string) error {
	_, err := s.RDB.Del(s.Ctx, key).Result()

	return err
}
