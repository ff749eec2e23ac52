package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// SearchCache defines the interface for caching unified search envelopes and
// autocomplete suggestion lists. Implementations return ErrCacheMiss for
// absent keys.
type SearchCache interface {
	BuildSearchKey(typeFilter, term string, page, limit int) string
	BuildSuggestKey(term string) string
	GetSearch(ctx context.Context, key string) (*domain.SearchResponse, error)
	SetSearch(ctx context.Context, key string, result *domain.SearchResponse, ttl time.Duration) error
	GetSuggestions(ctx context.Context, key string) ([]domain.Suggestion, error)
	SetSuggestions(ctx context.Context, key string, suggestions []domain.Suggestion, ttl time.Duration) error
	Close() error
}
