package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/okian/careeriq/internal/domain/model"
)

// Default connection configuration constants.
const (
	defaultConnectTimeout = 10 * time.Second
)

// Mongo bundles the collection stores backed by a single MongoDB
// database.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect establishes a MongoDB connection and pings the deployment.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &Mongo{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Database exposes the raw database handle for index setup and
// ingestion tooling.
func (m *Mongo) Database() *mongo.Database {
	return m.db
}

// Profiles returns the profile store.
func (m *Mongo) Profiles() *MongoProfileStore {
	return &MongoProfileStore{coll: m.db.Collection(ProfileCollection)}
}

// Surveys returns the survey population source.
func (m *Mongo) Surveys() *MongoSurveySource {
	return &MongoSurveySource{coll: m.db.Collection(SurveyCollection)}
}

// Reports returns the benchmark report store.
func (m *Mongo) Reports() *MongoReportStore {
	return &MongoReportStore{coll: m.db.Collection(ReportCollection)}
}

// Plans returns the career plan store.
func (m *Mongo) Plans() *MongoPlanStore {
	return &MongoPlanStore{coll: m.db.Collection(PlanCollection)}
}

// InsertSurveyRecords batch-inserts ingested survey responses.
func (m *Mongo) InsertSurveyRecords(ctx context.Context, recs []model.SurveyRecord) error {
	if len(recs) == 0 {
		return nil
	}
	docs := make([]any, len(recs))
	for i, r := range recs {
		docs[i] = r
	}
	if _, err := m.db.Collection(SurveyCollection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert survey records: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the stores rely on. The partial
// unique indexes on (user_id, is_current) and (user_id, is_active)
// keep the at-most-one-active-version invariant enforced by the store
// itself rather than by write ordering alone.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	surveys := []mongo.IndexModel{
		{Keys: bson.D{{Key: "country", Value: 1}, {Key: "dev_role", Value: 1}, {Key: "years_experience", Value: 1}}},
		{Keys: bson.D{{Key: "dev_role", Value: 1}, {Key: "years_experience", Value: 1}}},
	}
	if _, err := m.db.Collection(SurveyCollection).Indexes().CreateMany(ctx, surveys); err != nil {
		return fmt.Errorf("create survey indexes: %w", err)
	}

	profileIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.db.Collection(ProfileCollection).Indexes().CreateOne(ctx, profileIdx); err != nil {
		return fmt.Errorf("create profile index: %w", err)
	}

	reportIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_current", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_current": true}),
	}
	if _, err := m.db.Collection(ReportCollection).Indexes().CreateOne(ctx, reportIdx); err != nil {
		return fmt.Errorf("create report index: %w", err)
	}

	planIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_active", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"is_active": true}),
	}
	if _, err := m.db.Collection(PlanCollection).Indexes().CreateOne(ctx, planIdx); err != nil {
		return fmt.Errorf("create plan index: %w", err)
	}
	return nil
}
