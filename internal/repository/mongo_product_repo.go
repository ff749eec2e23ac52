package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
)

// productSearchFields are the fields matched by unified search.
var productSearchFields = []string{"title", "description", "category"}

type mongoProductRepository struct {
	col *mongo.Collection
}

// NewMongoProductRepository creates a MongoDB-backed product repository.
func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{col: db.Collection("products")}
}

func (r *mongoProductRepository) Search(ctx context.Context, term string, skip, limit int64) ([]domain.ProductResult, error) {
	l := log.Ctx(ctx)

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetProjection(bson.M{
			"title":       1,
			"description": 1,
			"category":    1,
			"price":       1,
			"images":      bson.M{"$slice": 1},
		})

	cursor, err := r.col.Find(ctx, fieldsMatch(term, productSearchFields...), opts)
	if err != nil {
		l.Error().Err(err).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	var docs []domain.Product
	if err := cursor.All(ctx, &docs); err != nil {
		l.Error().Err(err).Msg("failed to decode product results")
		return nil, fmt.Errorf("failed to decode product results: %w", err)
	}

	results := make([]domain.ProductResult, len(docs))
	for i := range docs {
		results[i] = docs[i].ToResult()
	}
	return results, nil
}

func (r *mongoProductRepository) Count(ctx context.Context, term string) (int64, error) {
	l := log.Ctx(ctx)

	count, err := r.col.CountDocuments(ctx, fieldsMatch(term, productSearchFields...))
	if err != nil {
		l.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *mongoProductRepository) SuggestTitles(ctx context.Context, term string, limit int64) ([]domain.Suggestion, error) {
	l := log.Ctx(ctx)

	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"title": 1})

	cursor, err := r.col.Find(ctx, bson.M{"title": substringRegex(term)}, opts)
	if err != nil {
		l.Error().Err(err).Msg("failed to suggest product titles")
		return nil, fmt.Errorf("failed to suggest product titles: %w", err)
	}

	var docs []domain.Product
	if err := cursor.All(ctx, &docs); err != nil {
		l.Error().Err(err).Msg("failed to decode product suggestions")
		return nil, fmt.Errorf("failed to decode product suggestions: %w", err)
	}

	suggestions := make([]domain.Suggestion, len(docs))
	for i := range docs {
		suggestions[i] = domain.Suggestion{
			Text:     docs[i].Title,
			Category: domain.SuggestionCategoryProduct,
			SourceID: docs[i].ID.Hex(),
		}
	}
	return suggestions, nil
}
