package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/cache"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/domain"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/internal/repository"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/log"
	"github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/response"
)

var ErrQueryTooShort = errors.New("search query must be at least 2 characters")

const (
	minTermLength = 2

	// suggestionsPerCategory and maxSuggestions interact: four categories of
	// three can overflow the overall budget, and truncation happens after
	// concatenation, so the last categories lose out when every category is
	// full. Callers depend on this exact ordering and truncation.
	suggestionsPerCategory = 3
	maxSuggestions         = 10
)

type searchServiceImpl struct {
	homestays repository.HomestayRepository
	guides    repository.GuideRepository
	products  repository.ProductRepository
	cache     cache.SearchCache
	cacheTTL  time.Duration
	sf        singleflight.Group
}

// NewSearchService creates a new search service over the three listing
// repositories.
func NewSearchService(
	homestays repository.HomestayRepository,
	guides repository.GuideRepository,
	products repository.ProductRepository,
	searchCache cache.SearchCache,
	cacheTTL time.Duration,
) SearchService {
	return &searchServiceImpl{
		homestays: homestays,
		guides:    guides,
		products:  products,
		cache:     searchCache,
		cacheTTL:  cacheTTL,
	}
}

// Search runs the unified search: one paginated fetch plus one count per
// active type, all concurrently. The first failing query aborts the whole
// request; no partial results are returned.
func (s *searchServiceImpl) Search(ctx context.Context, req *domain.SearchRequest) (*domain.SearchResponse, error) {
	term := strings.TrimSpace(req.Query)
	if len(term) < minTermLength {
		return nil, ErrQueryTooShort
	}

	typeFilter := req.Type
	if typeFilter == "" {
		typeFilter = domain.TypeFilterAll
	}
	page, limit := response.NormalizePageLimit(req.Page, req.Limit)
	skip := int64((page - 1) * limit)

	cacheKey := s.cache.BuildSearchKey(typeFilter, term, page, limit)

	result, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		// Try cache
		cached, err := s.cache.GetSearch(ctx, cacheKey)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Msg("cache get error")
		}

		// Inactive types keep their empty lists and zero counts without
		// issuing any query.
		homestays := []domain.HomestayResult{}
		guides := []domain.GuideResult{}
		products := []domain.ProductResult{}
		var counts domain.SearchCounts

		g, gCtx := errgroup.WithContext(ctx)

		if typeFilter == domain.TypeFilterAll || typeFilter == domain.TypeFilterHomestays {
			g.Go(func() error {
				var err error
				homestays, err = s.homestays.Search(gCtx, term, skip, int64(limit))
				return err
			})
			g.Go(func() error {
				var err error
				counts.Homestays, err = s.homestays.Count(gCtx, term)
				return err
			})
		}

		if typeFilter == domain.TypeFilterAll || typeFilter == domain.TypeFilterGuides {
			g.Go(func() error {
				var err error
				guides, err = s.guides.Search(gCtx, term, skip, int64(limit))
				return err
			})
			g.Go(func() error {
				var err error
				counts.Guides, err = s.guides.Count(gCtx, term)
				return err
			})
		}

		if typeFilter == domain.TypeFilterAll || typeFilter == domain.TypeFilterProducts {
			g.Go(func() error {
				var err error
				products, err = s.products.Search(gCtx, term, skip, int64(limit))
				return err
			})
			g.Go(func() error {
				var err error
				counts.Products, err = s.products.Count(gCtx, term)
				return err
			})
		}

		if err := g.Wait(); err != nil {
			return nil, err
		}

		counts.Total = counts.Homestays + counts.Guides + counts.Products

		resp := &domain.SearchResponse{
			Homestays:  homestays,
			Guides:     guides,
			Products:   products,
			Counts:     counts,
			Pagination: response.NewPagination(page, limit, counts.Total),
		}

		// Async write cache
		s.asyncCacheSearch(cacheKey, resp)

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.SearchResponse), nil
}

// Autocomplete collects up to three suggestions per category concurrently,
// concatenates them as locations, homestays, guides, products, and truncates
// the combined list to ten entries.
func (s *searchServiceImpl) Autocomplete(ctx context.Context, term string) ([]domain.Suggestion, error) {
	term = strings.TrimSpace(term)
	if len(term) < minTermLength {
		return nil, ErrQueryTooShort
	}

	cacheKey := s.cache.BuildSuggestKey(term)

	result, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		// Try cache
		cached, err := s.cache.GetSuggestions(ctx, cacheKey)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Msg("cache get error")
		}

		var (
			districts           []domain.DistrictCount
			homestaySuggestions []domain.Suggestion
			guideSuggestions    []domain.Suggestion
			productSuggestions  []domain.Suggestion
		)

		g, gCtx := errgroup.WithContext(ctx)

		g.Go(func() error {
			var err error
			districts, err = s.homestays.DistrictCounts(gCtx, term, suggestionsPerCategory)
			return err
		})
		g.Go(func() error {
			var err error
			homestaySuggestions, err = s.homestays.SuggestTitles(gCtx, term, suggestionsPerCategory)
			return err
		})
		g.Go(func() error {
			var err error
			guideSuggestions, err = s.guides.SuggestNames(gCtx, term, suggestionsPerCategory)
			return err
		})
		g.Go(func() error {
			var err error
			productSuggestions, err = s.products.SuggestTitles(gCtx, term, suggestionsPerCategory)
			return err
		})

		if err := g.Wait(); err != nil {
			return nil, err
		}

		suggestions := make([]domain.Suggestion, 0, 4*suggestionsPerCategory)
		for _, d := range districts {
			suggestions = append(suggestions, domain.Suggestion{
				Text:     d.District,
				Category: domain.SuggestionCategoryLocation,
				Count:    d.Count,
			})
		}
		suggestions = append(suggestions, homestaySuggestions...)
		suggestions = append(suggestions, guideSuggestions...)
		suggestions = append(suggestions, productSuggestions...)

		// Truncate after concatenation: earlier categories can starve later
		// ones when every category fills its quota.
		if len(suggestions) > maxSuggestions {
			suggestions = suggestions[:maxSuggestions]
		}

		// Async write cache
		s.asyncCacheSuggestions(cacheKey, suggestions)

		return suggestions, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]domain.Suggestion), nil
}

func (s *searchServiceImpl) asyncCacheSearch(key string, resp *domain.SearchResponse) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.cache.SetSearch(ctx, key, resp, s.cacheTTL); err != nil {
			l := log.L()
			l.Warn().Err(err).Str("key", key).Msg("cache set error")
		}
	}()
}

func (s *searchServiceImpl) asyncCacheSuggestions(key string, suggestions []domain.Suggestion) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := s.cache.SetSuggestions(ctx, key, suggestions, s.cacheTTL); err != nil {
			l := log.L()
			l.Warn().Err(err).Str("key", key).Msg("cache set error")
		}
	}()
}
