package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/curioapp/curio-server/internal/domain"
	"github.com/curioapp/curio-server/internal/search"
	"github.com/curioapp/curio-server/internal/store"
)

// SearchService keeps the full-text index in sync with the store and
// answers search queries. Index writes are best effort; a failed write
// is logged and the authoritative data in the store is untouched.
type SearchService struct {
	index  *search.Index
	store  *store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, store *store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Query runs a search scoped to the given user.
func (s *SearchService) Query(ctx context.Context, params search.Params) (*search.Result, error) {
	return s.index.Search(ctx, params)
}

// IndexItem adds or updates an item in the search index.
func (s *SearchService) IndexItem(item *domain.Item, category *domain.Category) {
	if err := s.index.IndexDocument(search.ItemToDocument(item, category)); err != nil {
		s.logWarn("Failed to index item", "item_id", item.ID, "error", err)
	}
}

// IndexCategory adds or updates a category in the search index.
func (s *SearchService) IndexCategory(category *domain.Category) {
	if err := s.index.IndexDocument(search.CategoryToDocument(category)); err != nil {
		s.logWarn("Failed to index category", "category_id", category.ID, "error", err)
	}
}

// DeleteDocument removes one document from the index.
func (s *SearchService) DeleteDocument(id string) {
	if err := s.index.DeleteDocument(id); err != nil {
		s.logWarn("Failed to remove document from index", "id", id, "error", err)
	}
}

// DeleteDocuments removes a batch of documents from the index.
func (s *SearchService) DeleteDocuments(ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := s.index.DeleteDocuments(ids); err != nil {
		s.logWarn("Failed to remove documents from index", "count", len(ids), "error", err)
	}
}

// DocumentCount reports the number of documents in the index.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// Rebuild drops the index and re-indexes every category and item in
// the store. Used at startup after a mapping version change and as a
// recovery path for a corrupted index.
func (s *SearchService) Rebuild(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("reset index: %w", err)
	}

	categories := make(map[string]*domain.Category)
	var docs []*search.Document

	for category, err := range s.store.Categories.List(ctx) {
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		categories[category.ID] = category
		docs = append(docs, search.CategoryToDocument(category))
	}

	for item, err := range s.store.Items.List(ctx) {
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		category, ok := categories[item.CategoryID]
		if !ok {
			// Orphaned item, skip rather than fail the rebuild
			s.logWarn("Skipping item with missing category", "item_id", item.ID, "category_id", item.CategoryID)
			continue
		}
		docs = append(docs, search.ItemToDocument(item, category))
	}

	if err := s.index.IndexDocuments(docs); err != nil {
		return fmt.Errorf("index documents: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Search index rebuilt", "documents", len(docs))
	}

	return nil
}

// RebuildIfNeeded triggers a full rebuild when the index was freshly
// created, for instance after a mapping version bump.
func (s *SearchService) RebuildIfNeeded(ctx context.Context) error {
	count, err := s.index.DocumentCount()
	if err != nil {
		return fmt.Errorf("document count: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.Rebuild(ctx)
}

func (s *SearchService) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
