package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupItemFixture creates a user plus a Books category and returns the
// auth data, the category, and the Author/Pages/Tags field IDs.
func setupItemFixture(t *testing.T, ts *testServer, email string) (AuthResponse, CategoryResponse, map[string]string) {
	t.Helper()

	user := ts.createTestUser(t, email)
	cat := ts.createTestCategory(t, user.AccessToken, "Books", bookFields())

	fields := map[string]string{
		"author": categoryFieldID(t, cat, "Author"),
		"pages":  categoryFieldID(t, cat, "Pages"),
		"tags":   categoryFieldID(t, cat, "Tags"),
	}
	return user, cat, fields
}

func TestCreateItem_NormalizesFieldData(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "items@example.com")

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Dune",
		"field_data": map[string]any{
			fields["author"]: "Frank Herbert",
			fields["pages"]:  "412",
			fields["tags"]:   "sci-fi, classic",
		},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[ItemResponse](t, resp)
	item := envelope.Data
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, cat.ID, item.CategoryID)

	// Numeric strings become numbers and comma strings become lists.
	assert.Equal(t, float64(412), item.FieldData[fields["pages"]].Num())
	assert.Equal(t, []string{"sci-fi", "classic"}, item.FieldData[fields["tags"]].Items())
}

func TestCreateItem_CollectsAllFieldErrors(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "fielderrs@example.com")

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Broken",
		"field_data": map[string]any{
			// Required author missing, pages below minimum.
			fields["pages"]: 0.5,
		},
	}, "Authorization: Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	envelope := decodeEnvelope[struct{}](t, resp)
	assert.Equal(t, "VALIDATION", envelope.Code)

	details, ok := envelope.Details.(map[string]any)
	require.True(t, ok, "details must be a field-to-message map, got %T", envelope.Details)
	assert.Contains(t, details, fields["author"])
	assert.Contains(t, details, fields["pages"])
}

func TestCreateItem_UnknownCategory(t *testing.T) {
	ts := setupTestServer(t)
	user := ts.createTestUser(t, "nocat@example.com")

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": "cat-missing",
		"name":        "Orphan",
	}, "Authorization: Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateItem_ForeignCategoryIsNotFound(t *testing.T) {
	ts := setupTestServer(t)
	_, cat, _ := setupItemFixture(t, ts, "owner@example.com")
	intruder := ts.createTestUser(t, "intruder@example.com")

	resp := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Sneaky",
	}, "Authorization: Bearer "+intruder.AccessToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetItem_RendersFields(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "render@example.com")

	create := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Dune",
		"field_data": map[string]any{
			fields["author"]: "Frank Herbert",
			fields["tags"]:   []string{"sci-fi", "classic"},
		},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, create.Code, create.Body.String())
	itemID := decodeEnvelope[ItemResponse](t, create).Data.ID

	resp := ts.api.Get("/api/v1/items/"+itemID, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ItemResponse](t, resp)
	rendered := make(map[string]string)
	for _, r := range envelope.Data.RenderedFields {
		rendered[r.Name] = r.Display
	}

	assert.Equal(t, "Frank Herbert", rendered["Author"])
	assert.Equal(t, "-", rendered["Pages"], "empty optional renders as a dash")
	assert.Equal(t, "sci-fi, classic", rendered["Tags"])
}

func TestUpdateItem_RevalidatesAgainstCurrentSchema(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "revalidate@example.com")

	create := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Dune",
		"field_data":  map[string]any{fields["author"]: "Frank Herbert"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, create.Code, create.Body.String())
	itemID := decodeEnvelope[ItemResponse](t, create).Data.ID

	// Dropping the required author fails.
	resp := ts.api.Patch("/api/v1/items/"+itemID, map[string]any{
		"field_data": map[string]any{fields["pages"]: 42},
	}, "Authorization: Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// A complete replacement succeeds.
	resp = ts.api.Patch("/api/v1/items/"+itemID, map[string]any{
		"field_data": map[string]any{
			fields["author"]: "F. Herbert",
			fields["pages"]:  42,
		},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[ItemResponse](t, resp)
	assert.Equal(t, "F. Herbert", envelope.Data.FieldData[fields["author"]].Str())
}

func TestListItems_PaginationAndFilter(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "paging@example.com")

	for i := 0; i < 4; i++ {
		resp := ts.api.Post("/api/v1/items", map[string]any{
			"category_id": cat.ID,
			"name":        fmt.Sprintf("Dune %d", i+1),
			"field_data":  map[string]any{fields["author"]: "Frank Herbert"},
		}, "Authorization: Bearer "+user.AccessToken)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Get("/api/v1/items?category_id="+cat.ID+"&limit=2",
		"Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[ListItemsResponse](t, resp)
	assert.Equal(t, 4, envelope.Data.Total)
	assert.Len(t, envelope.Data.Items, 2)
	assert.Equal(t, 2, envelope.Data.Limit)

	// Substring search narrows the page.
	resp = ts.api.Get("/api/v1/items?search=dune+3", "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, resp.Code)
	envelope = decodeEnvelope[ListItemsResponse](t, resp)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Dune 3", envelope.Data.Items[0].Name)
}

func TestListItems_ForeignCategoryFilterIsNotFound(t *testing.T) {
	ts := setupTestServer(t)
	_, cat, _ := setupItemFixture(t, ts, "filterowner@example.com")
	other := ts.createTestUser(t, "filterother@example.com")

	resp := ts.api.Get("/api/v1/items?category_id="+cat.ID,
		"Authorization: Bearer "+other.AccessToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteItem(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "delete@example.com")

	create := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Dune",
		"field_data":  map[string]any{fields["author"]: "Frank Herbert"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, create.Code)
	itemID := decodeEnvelope[ItemResponse](t, create).Data.ID

	del := ts.api.Delete("/api/v1/items/"+itemID, "Authorization: Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusOK, del.Code)

	get := ts.api.Get("/api/v1/items/"+itemID, "Authorization: Bearer "+user.AccessToken)
	assert.Equal(t, http.StatusNotFound, get.Code)
}

func TestGetItem_OtherUsersIsNotFound(t *testing.T) {
	ts := setupTestServer(t)
	user, cat, fields := setupItemFixture(t, ts, "itemowner@example.com")
	other := ts.createTestUser(t, "itemother@example.com")

	create := ts.api.Post("/api/v1/items", map[string]any{
		"category_id": cat.ID,
		"name":        "Dune",
		"field_data":  map[string]any{fields["author"]: "Frank Herbert"},
	}, "Authorization: Bearer "+user.AccessToken)
	require.Equal(t, http.StatusOK, create.Code)
	itemID := decodeEnvelope[ItemResponse](t, create).Data.ID

	resp := ts.api.Get("/api/v1/items/"+itemID, "Authorization: Bearer "+other.AccessToken)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
