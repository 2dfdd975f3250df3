package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/okian/careeriq/internal/domain/model"
)

// MongoPlanStore implements PlanStore over career_plans.
type MongoPlanStore struct {
	coll *mongo.Collection
}

// NewMongoPlanStore creates a plan store over db.
func NewMongoPlanStore(db *mongo.Database) *MongoPlanStore {
	return &MongoPlanStore{coll: db.Collection(PlanCollection)}
}

// Activate archives the user's active plans, then inserts p as
// active. Same two-write discipline and index guard as report
// activation.
func (s *MongoPlanStore) Activate(ctx context.Context, p model.CareerPlan) (model.CareerPlan, error) {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"user_id": p.UserID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return model.CareerPlan{}, fmt.Errorf("archive plans: %w", err)
	}

	p.ID = primitive.NewObjectID()
	p.IsActive = true
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return model.CareerPlan{}, fmt.Errorf("insert plan: %w", err)
	}
	return p, nil
}

// Active returns the single active plan for the user.
func (s *MongoPlanStore) Active(ctx context.Context, userID string) (model.CareerPlan, error) {
	var p model.CareerPlan
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID, "is_active": true}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.CareerPlan{}, ErrNotFound
	}
	if err != nil {
		return model.CareerPlan{}, fmt.Errorf("find active plan: %w", err)
	}
	return p, nil
}

// UpdateRecommendation replaces one embedded recommendation via a
// positional update and persists the recomputed completion.
func (s *MongoPlanStore) UpdateRecommendation(ctx context.Context, planID primitive.ObjectID, rec model.Recommendation, completion int) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": planID, "recommendations.id": rec.ID},
		bson.M{"$set": bson.M{
			"recommendations.$":             rec,
			"overall_completion_percentage": completion,
		}},
	)
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRecommendations replaces the embedded recommendation list, used
// to persist legacy id repair.
func (s *MongoPlanStore) SetRecommendations(ctx context.Context, planID primitive.ObjectID, recs []model.Recommendation, completion int) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": planID},
		bson.M{"$set": bson.M{
			"recommendations":               recs,
			"overall_completion_percentage": completion,
		}},
	)
	if err != nil {
		return fmt.Errorf("set recommendations: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
