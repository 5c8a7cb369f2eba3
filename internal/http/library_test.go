package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryController_CRUD(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "GET", "/api/library", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	w = doRequest(t, router, "POST", "/api/library",
		`{"name": "Blackbird", "categoryId": "cat-song", "starRating": 3}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	itemID := body["id"].(string)
	assert.Len(t, itemID, 16)
	assert.Equal(t, "cat-song", body["category_id"])
	assert.EqualValues(t, 3, body["star_rating"])

	// Partial update leaves omitted fields alone
	w = doRequest(t, router, "PUT", "/api/library/"+itemID, `{"starRating": 5}`)
	require.Equal(t, http.StatusOK, w.Code)

	body = decodeBody(t, w)
	assert.Equal(t, "Blackbird", body["name"])
	assert.EqualValues(t, 5, body["star_rating"])

	w = doRequest(t, router, "DELETE", "/api/library/"+itemID, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, "GET", "/api/library", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestLibraryController_AddItem_MissingName(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/library", `{"starRating": 3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLibraryController_UpdateItem_NotFound(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "PUT", "/api/library/lib-missing-0001", `{"starRating": 3}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
