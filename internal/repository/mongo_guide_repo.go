package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
)

// guideSearchFields are the fields matched by unified search. The regex
// matches specializations element-wise since it is an array field.
var guideSearchFields = []string{"name", "bio", "specializations", "district"}

type mongoGuideRepository struct {
	col *mongo.Collection
}

// NewMongoGuideRepository creates a MongoDB-backed guide repository.
func NewMongoGuideRepository(db *mongo.Database) GuideRepository {
	return &mongoGuideRepository{col: db.Collection("guides")}
}

func (r *mongoGuideRepository) Search(ctx context.Context, term string, skip, limit int64) ([]domain.GuideResult, error) {
	l := log.Ctx(ctx)

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{
			"name":          1,
			"bio":           1,
			"district":      1,
			"price_per_day": 1,
			"rating":        1,
			"images":        bson.M{"$slice": 1},
		})

	cursor, err := r.col.Find(ctx, fieldsMatch(term, guideSearchFields...), opts)
	if err != nil {
		l.Error().Err(err).Msg("failed to search guides")
		return nil, fmt.Errorf("failed to search guides: %w", err)
	}

	var docs []domain.Guide
	if err := cursor.All(ctx, &docs); err != nil {
		l.Error().Err(err).Msg("failed to decode guide results")
		return nil, fmt.Errorf("failed to decode guide results: %w", err)
	}

	results := make([]domain.GuideResult, len(docs))
	for i := range docs {
		results[i] = docs[i].ToResult()
	}
	return results, nil
}

func (r *mongoGuideRepository) Count(ctx context.Context, term string) (int64, error) {
	l := log.Ctx(ctx)

	count, err := r.col.CountDocuments(ctx, fieldsMatch(term, guideSearchFields...))
	if err != nil {
		l.Error().Err(err).Msg("failed to count guides")
		return 0, fmt.Errorf("failed to count guides: %w", err)
	}
	return count, nil
}

func (r *mongoGuideRepository) SuggestNames(ctx context.Context, term string, limit int64) ([]domain.Suggestion, error) {
	l := log.Ctx(ctx)

	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"name": 1})

	cursor, err := r.col.Find(ctx, bson.M{"name": substringRegex(term)}, opts)
	if err != nil {
		l.Error().Err(err).Msg("failed to suggest guide names")
		return nil, fmt.Errorf("failed to suggest guide names: %w", err)
	}

	var docs []domain.Guide
	if err := cursor.All(ctx, &docs); err != nil {
		l.Error().Err(err).Msg("failed to decode guide suggestions")
		return nil, fmt.Errorf("failed to decode guide suggestions: %w", err)
	}

	suggestions := make([]domain.Suggestion, len(docs))
	for i := range docs {
		suggestions[i] = domain.Suggestion{
			Text:     docs[i].Name,
			Category: domain.SuggestionCategoryGuide,
			SourceID: docs[i].ID.Hex(),
		}
	}
	return suggestions, nil
}

func (r *mongoGuideRepository) GetByID(ctx context.Context, id string) (*domain.Guide, error) {
	l := log.Ctx(ctx)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidListingID
	}

	var doc domain.Guide
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		l.Error().Err(err).Str("guide_id", id).Msg("failed to get guide by id")
		return nil, fmt.Errorf("failed to get guide by id: %w", err)
	}
	return &doc, nil
}
