package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/okian/careeriq/internal/domain/cohort"
	"github.com/okian/careeriq/internal/domain/model"
)

// MongoSurveySource implements cohort.Source over the ingested survey
// population. Read-only.
type MongoSurveySource struct {
	coll *mongo.Collection
}

// NewMongoSurveySource creates a survey source over db.
func NewMongoSurveySource(db *mongo.Database) *MongoSurveySource {
	return &MongoSurveySource{coll: db.Collection(SurveyCollection)}
}

// surveyFilter translates a cohort filter to a conjunctive query.
// Non-positive salaries are always excluded.
func surveyFilter(f cohort.Filter) bson.M {
	q := bson.M{
		"salary":           bson.M{"$gt": 0},
		"years_experience": bson.M{"$gte": f.MinExperience, "$lte": f.MaxExperience},
	}
	if f.Country != "" {
		q["country"] = f.Country
	}
	if f.Role != "" {
		q["dev_role"] = f.Role
	}
	return q
}

// Count returns the number of survey records matching f.
func (s *MongoSurveySource) Count(ctx context.Context, f cohort.Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, surveyFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count survey records: %w", err)
	}
	return n, nil
}

// Aggregate returns ascending salaries and per-category top-k skill
// frequency tables for the records matching f.
func (s *MongoSurveySource) Aggregate(ctx context.Context, f cohort.Filter, k cohort.TopK) (cohort.Aggregate, error) {
	q := surveyFilter(f)

	salaries, err := s.sortedSalaries(ctx, q)
	if err != nil {
		return cohort.Aggregate{}, err
	}

	agg := cohort.Aggregate{Salaries: salaries}
	categories := []struct {
		field string
		k     int
		dst   *[]model.SkillCount
	}{
		{"languages", k.Languages, &agg.Languages},
		{"databases", k.Databases, &agg.Databases},
		{"platforms", k.Platforms, &agg.Platforms},
		{"frameworks", k.Frameworks, &agg.Frameworks},
	}
	for _, c := range categories {
		table, err := s.topSkills(ctx, q, c.field, c.k)
		if err != nil {
			return cohort.Aggregate{}, err
		}
		*c.dst = table
	}
	return agg, nil
}

func (s *MongoSurveySource) sortedSalaries(ctx context.Context, q bson.M) ([]float64, error) {
	opts := options.Find().
		SetProjection(bson.M{"salary": 1, "_id": 0}).
		SetSort(bson.D{{Key: "salary", Value: 1}})
	cur, err := s.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find salaries: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Salary float64 `bson:"salary"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode salaries: %w", err)
	}
	salaries := make([]float64, len(rows))
	for i, r := range rows {
		salaries[i] = r.Salary
	}
	return salaries, nil
}

// topSkills unwinds one multi-valued skill field and counts values.
// $sortByCount leaves tie order to the store, which is deterministic
// per deployment but otherwise unspecified.
func (s *MongoSurveySource) topSkills(ctx context.Context, q bson.M, field string, k int) ([]model.SkillCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: q}},
		{{Key: "$unwind", Value: "$" + field}},
		{{Key: "$sortByCount", Value: "$" + field}},
		{{Key: "$limit", Value: k}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", field, err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Name  string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode %s counts: %w", field, err)
	}
	table := make([]model.SkillCount, len(rows))
	for i, r := range rows {
		table[i] = model.SkillCount{Name: r.Name, Count: r.Count}
	}
	return table, nil
}
