package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store bundles the Mongo collections the service uses. It is built once
// in main and handed to every handler that needs it.
type Store struct {
	Client      *mongo.Client
	Itineraries *mongo.Collection
	Documents   *mongo.Collection
	Users       *mongo.Collection
}

// Connect dials Mongo and prepares the collections. The unique index on
// the lookup code is what turns a generator collision into a retryable
// duplicate-key error instead of silent data loss.
func Connect(ctx context.Context, uri string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	database := client.Database("wayfare")
	s := &Store{
		Client:      client,
		Itineraries: database.Collection("itineraries"),
		Documents:   database.Collection("documents"),
		Users:       database.Collection("users"),
	}

	_, err = s.Itineraries.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "itineraryid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_by", Value: 1}},
		},
	})
	if err != nil {
		return nil, err
	}

	_, err = s.Documents.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "itinerary_id", Value: 1}},
	})
	if err != nil {
		return nil, err
	}

	_, err = s.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}

// IsDup reports whether err is a unique-index violation.
func IsDup(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
