package domain

import "github.com/Rajkumar-Gurjar/sih-2025-jharkhand-tourism-backend/pkg/response"

// Type filters accepted by the unified search endpoint.
const (
	TypeFilterAll       = "all"
	TypeFilterHomestays = "homestays"
	TypeFilterGuides    = "guides"
	TypeFilterProducts  = "products"
)

// Suggestion categories, in autocomplete priority order.
const (
	SuggestionCategoryLocation = "location"
	SuggestionCategoryHomestay = "homestay"
	SuggestionCategoryGuide    = "guide"
	SuggestionCategoryProduct  = "product"
)

// SearchRequest is the unified search request.
type SearchRequest struct {
	Query string
	Type  string // "homestays" | "guides" | "products" | "all" (default)
	Page  int
	Limit int
}

// SearchCounts holds the per-type match counts and their sum.
type SearchCounts struct {
	Homestays int64 `json:"homestays"`
	Guides    int64 `json:"guides"`
	Products  int64 `json:"products"`
	Total     int64 `json:"total"`
}

// SearchResponse is the unified search response. Each type carries its own
// page of results; there is no cross-type ranking or merge.
type SearchResponse struct {
	Homestays  []HomestayResult    `json:"homestays"`
	Guides     []GuideResult       `json:"guides"`
	Products   []ProductResult     `json:"products"`
	Counts     SearchCounts        `json:"counts"`
	Pagination response.Pagination `json:"pagination"`
}

// Suggestion is a single autocomplete entry.
type Suggestion struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	SourceID string `json:"source_id,omitempty"`
	Count    int64  `json:"count,omitempty"` // location suggestions only
}

// AutocompleteResponse wraps the ordered suggestion list.
type AutocompleteResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// DistrictCount is an aggregated district with its listing count.
type DistrictCount struct {
	District string `bson:"_id" json:"district"`
	Count    int64  `bson:"count" json:"count"`
}
