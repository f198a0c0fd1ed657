package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/curioapp/curio-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search",
		Description: "Full-text search across the current user's items and categories",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains search query parameters.
type SearchInput struct {
	Authorization string   `header:"Authorization"`
	Query         string   `query:"q" doc:"Search query"`
	Types         []string `query:"type" enum:"item,category" doc:"Document types to include (default all)"`
	CategoryID    string   `query:"category_id" doc:"Restrict item results to one category"`
	Tags          []string `query:"tag" doc:"Filter by exact tags"`
	Limit         int      `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 20)"`
	Offset        int      `query:"offset" minimum:"0" doc:"Number of hits to skip"`
	SortBy        string   `query:"sort" enum:"relevance,name,recent" doc:"Sort order (default relevance)"`
	Facets        bool     `query:"facets" doc:"Include type and tag facet counts"`
}

// SearchHitResponse is a single search result.
type SearchHitResponse struct {
	ID           string            `json:"id" doc:"Entity ID"`
	Type         string            `json:"type" doc:"Entity type: item or category"`
	Score        float64           `json:"score" doc:"Relevance score"`
	Name         string            `json:"name" doc:"Entity name"`
	Description  string            `json:"description,omitempty" doc:"Entity description"`
	CategoryID   string            `json:"category_id,omitempty" doc:"Owning category ID (items only)"`
	CategoryName string            `json:"category_name,omitempty" doc:"Owning category name (items only)"`
	Tags         []string          `json:"tags,omitempty" doc:"Tags on the entity"`
	Highlights   map[string]string `json:"highlights,omitempty" doc:"Highlighted match fragments by field"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Query  string              `json:"query" doc:"Echo of the search query"`
	Total  uint64              `json:"total" doc:"Total matching documents"`
	TookMs int64               `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []SearchHitResponse `json:"hits" doc:"Matching documents"`
	Facets *search.Facets      `json:"facets,omitempty" doc:"Facet counts when requested"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	params := search.DefaultParams(userID)
	params.Query = input.Query
	params.Types = input.Types
	params.CategoryID = input.CategoryID
	params.Tags = input.Tags
	params.IncludeFacets = input.Facets
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}

	result, err := s.services.Search.Query(ctx, params)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHitResponse, len(result.Hits))
	for i, h := range result.Hits {
		hits[i] = SearchHitResponse{
			ID:           h.ID,
			Type:         string(h.Type),
			Score:        h.Score,
			Name:         h.Name,
			Description:  h.Description,
			CategoryID:   h.CategoryID,
			CategoryName: h.CategoryName,
			Tags:         h.Tags,
			Highlights:   h.Highlights,
		}
	}

	return &SearchOutput{
		Body: SearchResponse{
			Query:  result.Query,
			Total:  result.Total,
			TookMs: result.TookMs,
			Hits:   hits,
			Facets: result.Facets,
		},
	}, nil
}
