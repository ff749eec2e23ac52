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

// homestaySearchFields are the fields matched by unified search.
var homestaySearchFields = []string{"title", "description", "district", "address"}

type mongoHomestayRepository struct {
	col *mongo.Collection
}

// NewMongoHomestayRepository creates a MongoDB-backed homestay repository.
func NewMongoHomestayRepository(db *mongo.Database) HomestayRepository {
	return &mongoHomestayRepository{col: db.Collection("homestays")}
}

// searchFilter matches term against the search fields, restricted to active
// listings.
func (r *mongoHomestayRepository) searchFilter(term string) bson.M {
	filter := fieldsMatch(term, homestaySearchFields...)
	filter["status"] = string(domain.HomestayStatusActive)
	return filter
}

func (r *mongoHomestayRepository) Search(ctx context.Context, term string, skip, limit int64) ([]domain.HomestayResult, error) {
	l := log.Ctx(ctx)

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{
			"title":           1,
			"description":     1,
			"district":        1,
			"price_per_night": 1,
			"rating":          1,
			"images":          bson.M{"$slice": 1},
		})

	cursor, err := r.col.Find(ctx, r.searchFilter(term), opts)
	if err != nil {
		l.Error().Err(err).Msg("failed to search homestays")
		return nil, fmt.Errorf("failed to search homestays: %w", err)
	}

	var docs []domain.Homestay
	if err := cursor.All(ctx, &docs); err != nil {
		l.Error().Err(err).Msg("failed to decode homestay results")
		return nil, fmt.Errorf("failed to decode homestay results: %w", err)
	}

	results := make([]domain.HomestayResult, len(docs))
	for i := range docs {
		results[i] = docs[i].ToResult()
	}
	return results, nil
}

func (r *mongoHomestayRepository) Count(ctx context.Context, term string) (int64, error) {
	l := log.Ctx(ctx)

	count, err := r.col.CountDocuments(ctx, r.searchFilter(term))
	if err != nil {
		l.Error().Err(err).Msg("failed to count homestays")
		return 0, fmt.Errorf("failed to count homestays: %w", err)
	}
	return count, nil
}

func (r *mongoHomestayRepository) SuggestTitles(ctx context.Context, term string, limit int64) ([]domain.Suggestion, error) {
	l := log.Ctx(ctx)

	filter := bson.M{
		"title":  substringRegex(term),
		"status": string(domain.HomestayStatusActive),
	}
	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"title": 1})

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		l.Error().Err(err).Msg("failed to suggest homestay titles")
		return nil, fmt.Errorf("failed to suggest homestay titles: %w", err)
	}

	var docs []domain.Homestay
	if err := cursor.All(ctx, &docs); err != nil {
		l.Error().Err(err).Msg("failed to decode homestay suggestions")
		return nil, fmt.Errorf("failed to decode homestay suggestions: %w", err)
	}

	suggestions := make([]domain.Suggestion, len(docs))
	for i := range docs {
		suggestions[i] = domain.Suggestion{
			Text:     docs[i].Title,
			Category: domain.SuggestionCategoryHomestay,
			SourceID: docs[i].ID.Hex(),
		}
	}
	return suggestions, nil
}

func (r *mongoHomestayRepository) DistrictCounts(ctx context.Context, term string, limit int64) ([]domain.DistrictCount, error) {
	l := log.Ctx(ctx)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"district": substringRegex(term),
			"status":   string(domain.HomestayStatusActive),
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$district",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		l.Error().Err(err).Msg("failed to aggregate district counts")
		return nil, fmt.Errorf("failed to aggregate district counts: %w", err)
	}

	var counts []domain.DistrictCount
	if err := cursor.All(ctx, &counts); err != nil {
		l.Error().Err(err).Msg("failed to decode district counts")
		return nil, fmt.Errorf("failed to decode district counts: %w", err)
	}
	return counts, nil
}

func (r *mongoHomestayRepository) GetByID(ctx context.Context, id string) (*domain.Homestay, error) {
	l := log.Ctx(ctx)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidListingID
	}

	var doc domain.Homestay
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrListingNotFound
		}
		l.Error().Err(err).Str("homestay_id", id).Msg("failed to get homestay by id")
		return nil, fmt.Errorf("failed to get homestay by id: %w", err)
	}
	return &doc, nil
}
