package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookFields() []map[string]any {
	return []map[string]any{
		{"name": "Author", "type": "text", "required": true},
		{"name": "Pages", "type": "number", "required": false, "options": map[string]any{"min": 1}},
		{"name": "Tags", "type": "tags", "required": false},
	}
}

func TestCreateCategory_AssignsFieldIDs(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "cats@example.com")

	cat := ts.createTestCategory(t, user.AccessToken, "Books", bookFields())

	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, "Books", cat.Name)
	require.Len(t, cat.FieldConfig, 3)
	for _, f := range cat.FieldConfig {
		assert.NotEmpty(t, f.ID, "field %q must get a server-assigned ID", f.Name)
	}
}

func TestCreateCategory_BadFieldConfig(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "badfields@example.com")

	resp := ts.api.Post("/api/v1/categories", map[string]any{
		"name": "Broken",
		"field_config": []map[string]any{
			{"name": "Mystery", "type": "sparkles"},
		},
	}, "Authorization: Bearer "+user.AccessToken)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	envelope := decodeEnvelope[struct{}](t, resp)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
}

func TestCreateCategory_RequiresName(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "noname@example.com")

	resp := ts.api.Post("/api/v1/categories", map[string]any{
		"name": "",
	}, "Authorization: Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListCategories_ScopedToUser(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.createTestUser(t, "alice@example.com")
	bob := ts.createTestUser(t, "bob@example.com")

	ts.createTestCategory(t, alice.AccessToken, "Books", nil)
	ts.createTestCategory(t, alice.AccessToken, "Vinyl", nil)
	ts.createTestCategory(t, bob.AccessToken, "Coins", nil)

	resp := ts.api.Get("/api/v1/categories", "Authorization: Bearer "+alice.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ListCategoriesResponse](t, resp)
	require.Len(t, envelope.Data.Categories, 2)
	assert.Equal(t, "Books", envelope.Data.Categories[0].Name)
	assert.Equal(t, "Vinyl", envelope.Data.Categories[1].Name)
}

func TestGetCategory_OtherUsersIsNotFound(t *testing.T) {
	ts := setupTestServer(t)
	alice := ts.createTestUser(t, "alice2@example.com")
	bob := ts.createTestUser(t, "bob2@example.com")

	cat := ts.createTestCategory(t, alice.AccessToken, "Books", nil)

	// Owner sees it.
	resp := ts.api.Get("/api/v1/categories/"+cat.ID, "Authorization: Bearer "+alice.AccessToken)
	assert.Equal(t, http.StatusOK, resp.Code)

	// Anyone else gets 404, never 403.
	resp = ts.api.Get("/api/v1/categories/"+cat.ID, "Authorization: Bearer "+bob.AccessToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateCategory_PartialUpdate(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "update@example.com")

	cat := ts.createTestCategory(t, user.AccessToken, "Books", bookFields())

	resp := ts.api.Patch("/api/v1/categories/"+cat.ID, map[string]any{
		"color": "#ff8800",
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[CategoryResponse](t, resp)
	assert.Equal(t, "#ff8800", envelope.Data.Color)
	// Unset fields keep their values.
	assert.Equal(t, "Books", envelope.Data.Name)
	assert.Len(t, envelope.Data.FieldConfig, 3)
}

func TestUpdateCategory_ReplacesFieldConfig(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "replace@example.com")

	cat := ts.createTestCategory(t, user.AccessToken, "Books", bookFields())

	resp := ts.api.Patch("/api/v1/categories/"+cat.ID, map[string]any{
		"field_config": []map[string]any{
			{"name": "ISBN", "type": "text", "required": false},
		},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[CategoryResponse](t, resp)
	require.Len(t, envelope.Data.FieldConfig, 1)
	assert.Equal(t, "ISBN", envelope.Data.FieldConfig[0].Name)
	assert.NotEmpty(t, envelope.Data.FieldConfig[0].ID)
}

func TestDeleteCategory_CascadesItems(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "cascade@example.com")

	cat := ts.createTestCategory(t, user.AccessToken, "Books", bookFields())
	authorID := categoryFieldID(t, cat, "Author")

	create := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Dune",
		"field_data":  map[string]any{authorID: "Frank Herbert"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, create.Code, create.Body.String())
	itemID := decodeEnvelope[ItemResponse](t, create).Data.ID

	del := ts.api.Delete("/api/v1/categories/"+cat.ID, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, del.Code)

	// The category and its items are gone.
	assert.Equal(t, http.StatusNotFound,
		ts.api.Get("/api/v1/categories/"+cat.ID, "Authorization: Bearer "+user.AccessToken).Code)
	assert.Equal(t, http.StatusNotFound,
		ts.api.Get("/api/v1/items/"+itemID, "Authorization: Bearer "+user.AccessToken).Code)
}

func TestCategoryRoutes_RequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	assert.Equal(t, http.StatusUnauthorized, ts.api.Get("/api/v1/categories").Code)
	assert.Equal(t, http.StatusUnauthorized,
		ts.api.Post("/api/v1/categories", map[string]any{"name": "Books"}).Code)
}
