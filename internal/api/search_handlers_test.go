package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_FindsItemsAndCategories(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "search@example.com")

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Dune",
		"field_data":  map[string]any{fields["author"]: "Frank Herbert"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Field values are searchable, not just names.
	result := ts.api.Get("/api/v1/search?q=herbert", "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, result.Code, result.Body.String())

	envelope := decodeEnvelope[SearchResponse](t, result)
	require.True(t, envelope.Success)
	require.NotEmpty(t, envelope.Data.Hits)
	assert.Equal(t, "Dune", envelope.Data.Hits[0].Name)
	assert.Equal(t, "item", envelope.Data.Hits[0].Type)
	assert.Equal(t, cat.ID, envelope.Data.Hits[0].CategoryID)

	// Categories are indexed too.
	result = ts.api.Get("/api/v1/search?q=books", "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, result.Code)
	envelope = decodeEnvelope[SearchResponse](t, result)
	found := false
	for _, h := range envelope.Data.Hits {
		if h.Type == "category" && h.ID == cat.ID {
			found = true
		}
	}
	assert.True(t, found, "category must appear in search results")
}

func TestSearch_TypeFilter(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "typefilter@example.com")

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Book Collecting Guide",
		"field_data":  map[string]any{fields["author"]: "Nobody"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	result := ts.api.Get("/api/v1/search?q=book&type=category",
		"Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, result.Code, result.Body.String())

	envelope := decodeEnvelope[SearchResponse](t, result)
	for _, h := range envelope.Data.Hits {
		assert.Equal(t, "category", h.Type)
	}
}

func TestSearch_ScopedToUser(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "searchowner@example.com")
	other := ts.createTestUser(t, "searchother@example.com")

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Secret Dune",
		"field_data":  map[string]any{fields["author"]: "Frank Herbert"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	result := ts.api.Get("/api/v1/search?q=dune", "Authorization: Bearer "+other.AccessToken)
	require.Equal(t, http.StatusOK, result.Code)

	envelope := decodeEnvelope[SearchResponse](t, result)
	assert.Empty(t, envelope.Data.Hits, "search must never cross user boundaries")
}

func TestSearch_DeleteRemovesFromIndex(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "searchdelete@example.com")

	create := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Ephemeral",
		"field_data":  map[string]any{fields["author"]: "Frank Herbert"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, create.Code)
	itemID := decodeEnvelope[ItemResponse](t, create).Data.ID

	del := ts.api.Delete("/api/v1/items/"+itemID, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, del.Code)

	result := ts.api.Get("/api/v1/search?q=ephemeral", "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, result.Code)

	envelope := decodeEnvelope[SearchResponse](t, result)
	for _, h := range envelope.Data.Hits {
		assert.NotEqual(t, itemID, h.ID)
	}
}

func TestSearch_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?q=anything")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
