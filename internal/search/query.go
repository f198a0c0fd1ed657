package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query. UserID is mandatory; results never
// cross user boundaries.
type Params struct {
	UserID string
	Query  string   // User's search query
	Types  []string // Document types to include (empty = all)

	// Filters
	CategoryID string   // Restrict item results to one category
	Tags       []string // Filter by exact tags

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "name", "recent"
	SortOrder string // "asc", "desc"

	// Options
	IncludeFacets bool // Include type and tag facet counts
	Highlight     bool // Include match highlighting
}

// DefaultParams returns sensible defaults.
func DefaultParams(userID string) Params {
	return Params{
		UserID:        userID,
		Limit:         20,
		Offset:        0,
		SortBy:        "relevance",
		SortOrder:     "desc",
		IncludeFacets: true,
		Highlight:     true,
	}
}

// Result represents the search results.
type Result struct {
	Query  string  `json:"query"`
	Total  uint64  `json:"total"`
	TookMs int64   `json:"took_ms"`
	Hits   []Hit   `json:"hits"`
	Facets *Facets `json:"facets,omitempty"`
}

// Hit represents a single search result.
type Hit struct {
	ID           string            `json:"id"`
	Type         DocType           `json:"type"`
	Score        float64           `json:"score"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	CategoryID   string            `json:"category_id,omitempty"`
	CategoryName string            `json:"category_name,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	Highlights   map[string]string `json:"highlights,omitempty"`
}

// Facets contains facet counts.
type Facets struct {
	Types []FacetCount `json:"types,omitempty"`
	Tags  []FacetCount `json:"tags,omitempty"`
}

// FacetCount represents a facet value and its count.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a search query.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	if params.UserID == "" {
		return nil, fmt.Errorf("search requires a user scope")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.IncludeFacets {
		searchRequest.AddFacet("type", bleve.NewFacetRequest("type", 10))
		searchRequest.AddFacet("tags", bleve.NewFacetRequest("tags", 20))
	}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("description")
	}

	// Request stored fields
	searchRequest.Fields = []string{
		"id", "type", "name", "description", "category_id", "category_name", "tags",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if t, ok := hit.Fields["type"].(string); ok {
			searchHit.Type = DocType(t)
		}
		if n, ok := hit.Fields["name"].(string); ok {
			searchHit.Name = n
		}
		if d, ok := hit.Fields["description"].(string); ok {
			searchHit.Description = d
		}
		if c, ok := hit.Fields["category_id"].(string); ok {
			searchHit.CategoryID = c
		}
		if cn, ok := hit.Fields["category_name"].(string); ok {
			searchHit.CategoryName = cn
		}
		// Bleve stores a single tag as a string and several as a slice.
		switch tags := hit.Fields["tags"].(type) {
		case string:
			searchHit.Tags = []string{tags}
		case []interface{}:
			for _, t := range tags {
				if tag, ok := t.(string); ok {
					searchHit.Tags = append(searchHit.Tags, tag)
				}
			}
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	if params.IncludeFacets {
		result.Facets = extractFacets(searchResult)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	// User scope is non-negotiable.
	userQuery := bleve.NewTermQuery(params.UserID)
	userQuery.SetField("user_id")
	queries = append(queries, userQuery)

	// Main text query across name, description, category name, and
	// flattened field values, with fuzzy and prefix variants on name
	// for typo tolerance and autocomplete.
	if params.Query != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		descMatch := bleve.NewMatchQuery(params.Query)
		descMatch.SetField("description")
		descMatch.SetBoost(1.5)
		textQueries = append(textQueries, descMatch)

		categoryMatch := bleve.NewMatchQuery(params.Query)
		categoryMatch.SetField("category_name")
		categoryMatch.SetBoost(1.2)
		textQueries = append(textQueries, categoryMatch)

		fieldMatch := bleve.NewMatchQuery(params.Query)
		fieldMatch.SetField("field_text")
		textQueries = append(textQueries, fieldMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Type filter
	if len(params.Types) > 0 {
		typeQueries := make([]query.Query, len(params.Types))
		for i, t := range params.Types {
			tq := bleve.NewTermQuery(t)
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	// Category filter
	if params.CategoryID != "" {
		cq := bleve.NewTermQuery(params.CategoryID)
		cq.SetField("category_id")
		queries = append(queries, cq)
	}

	// Tag filter (exact match, OR across tags)
	if len(params.Tags) > 0 {
		tagQueries := make([]query.Query, len(params.Tags))
		for i, tag := range params.Tags {
			tq := bleve.NewTermQuery(tag)
			tq.SetField("tags")
			tagQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(tagQueries...))
	}

	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params Params) {
	switch params.SortBy {
	case "name":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-name"})
		} else {
			req.SortBy([]string{"name"})
		}
	case "recent":
		if params.SortOrder == "asc" {
			req.SortBy([]string{"created_at"})
		} else {
			req.SortBy([]string{"-created_at"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}

// extractFacets converts Bleve facets to our format.
func extractFacets(result *bleve.SearchResult) *Facets {
	facets := &Facets{}

	if typeFacet, ok := result.Facets["type"]; ok {
		for _, term := range typeFacet.Terms.Terms() {
			facets.Types = append(facets.Types, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	if tagFacet, ok := result.Facets["tags"]; ok {
		for _, term := range tagFacet.Terms.Terms() {
			facets.Tags = append(facets.Tags, FacetCount{
				Value: term.Term,
				Count: term.Count,
			})
		}
	}

	return facets
}
