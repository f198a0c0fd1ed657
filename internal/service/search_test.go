package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioapp/curio-server/internal/schema"
	"github.com/curioapp/curio-server/internal/search"
)

func TestSearchService_CategoriesAreSearchable(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	userID := registerTestUser(t, svc, "alice@example.com")

	category, err := svc.Categories.Create(ctx, userID, CreateCategoryRequest{
		Name:        "Vinyl Records",
		Description: "Albums on wax",
	})
	require.NoError(t, err)

	result, err := svc.Search.Query(ctx, searchParams(userID, "vinyl"))
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, category.ID, result.Hits[0].ID)
	assert.Equal(t, search.DocTypeCategory, result.Hits[0].Type)
}

func TestSearchService_ScopedToUser(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	alice := registerTestUser(t, svc, "alice@example.com")
	bob := registerTestUser(t, svc, "bob@example.com")

	_, err := svc.Categories.Create(ctx, alice, CreateCategoryRequest{Name: "Stamps"})
	require.NoError(t, err)

	result, err := svc.Search.Query(ctx, searchParams(bob, "stamps"))
	require.NoError(t, err)
	assert.Empty(t, result.Hits)
}

func TestSearchService_Rebuild(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	userID, categoryID, fields := itemFixture(t, svc)

	_, err := svc.Items.Create(ctx, userID, CreateItemRequest{
		CategoryID: categoryID,
		Name:       "Dune",
		FieldData:  schema.ValueMap{fields["author"]: schema.String("Frank Herbert")},
	})
	require.NoError(t, err)

	// Rebuild reconstructs everything from the store
	require.NoError(t, svc.Search.Rebuild(ctx))

	result, err := svc.Search.Query(ctx, searchParams(userID, "herbert"))
	require.NoError(t, err)
	assert.Len(t, result.Hits, 1)

	// Categories come back too
	result, err = svc.Search.Query(ctx, searchParams(userID, "books"))
	require.NoError(t, err)
	assert.Len(t, result.Hits, 1)
}

func TestSearchService_RebuildIfNeeded(t *testing.T) {
	svc := newTestServices(t)
	ctx := context.Background()
	userID := registerTestUser(t, svc, "alice@example.com")

	_, err := svc.Categories.Create(ctx, userID, CreateCategoryRequest{Name: "Books"})
	require.NoError(t, err)

	// Index already has documents; a conditional rebuild is a no-op
	require.NoError(t, svc.Search.RebuildIfNeeded(ctx))

	result, err := svc.Search.Query(ctx, searchParams(userID, "books"))
	require.NoError(t, err)
	assert.Len(t, result.Hits, 1)
}
