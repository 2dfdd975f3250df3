package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/okian/careeriq/internal/domain/model"
)

// MongoProfileStore implements ProfileStore over profiles.
type MongoProfileStore struct {
	coll *mongo.Collection
}

// NewMongoProfileStore creates a profile store over db.
func NewMongoProfileStore(db *mongo.Database) *MongoProfileStore {
	return &MongoProfileStore{coll: db.Collection(ProfileCollection)}
}

// Upsert replaces the user's profile document, creating it if absent.
func (s *MongoProfileStore) Upsert(ctx context.Context, p model.Profile) (model.Profile, error) {
	p.UpdatedAt = time.Now().UTC()
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"user_id": p.UserID},
		p,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return model.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return s.Get(ctx, p.UserID)
}

// Get returns the user's profile.
func (s *MongoProfileStore) Get(ctx context.Context, userID string) (model.Profile, error) {
	var p model.Profile
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}
