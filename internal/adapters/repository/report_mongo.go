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

// MongoReportStore implements ReportStore over benchmark_reports.
type MongoReportStore struct {
	coll *mongo.Collection
}

// NewMongoReportStore creates a report store over db.
func NewMongoReportStore(db *mongo.Database) *MongoReportStore {
	return &MongoReportStore{coll: db.Collection(ReportCollection)}
}

// Activate archives the user's current reports, then inserts r as
// current. The two writes are sequential, not transactional; the
// partial unique index from EnsureIndexes rejects a second current
// report should a concurrent activation race in between.
func (s *MongoReportStore) Activate(ctx context.Context, r model.BenchmarkReport) (model.BenchmarkReport, error) {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"user_id": r.UserID, "is_current": true},
		bson.M{"$set": bson.M{"is_current": false}},
	)
	if err != nil {
		return model.BenchmarkReport{}, fmt.Errorf("archive reports: %w", err)
	}

	r.ID = primitive.NewObjectID()
	r.IsCurrent = true
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return model.BenchmarkReport{}, fmt.Errorf("insert report: %w", err)
	}
	return r, nil
}

// Current returns the single current report for the user.
func (s *MongoReportStore) Current(ctx context.Context, userID string) (model.BenchmarkReport, error) {
	var r model.BenchmarkReport
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID, "is_current": true}).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.BenchmarkReport{}, ErrNotFound
	}
	if err != nil {
		return model.BenchmarkReport{}, fmt.Errorf("find current report: %w", err)
	}
	return r, nil
}
