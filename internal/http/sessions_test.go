package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fretlog/fretlog/internal/entities"
)

func TestSessionsController_CurrentLifecycle(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	// Nothing running yet
	w := doRequest(t, router, "GET", "/api/sessions/current", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	// Start a session
	w = doRequest(t, router, "POST", "/api/sessions/current",
		`{"instrumentId": "inst-guitar", "startTime": 1700000000000}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	sessionID, _ := body["id"].(string)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "running", body["status"])

	// It is now the current session
	w = doRequest(t, router, "GET", "/api/sessions/current", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sessionID, decodeBody(t, w)["id"])

	// Running sessions do not appear in history
	w = doRequest(t, router, "GET", "/api/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// Cancel: the running session is deleted along with the pointer
	w = doRequest(t, router, "DELETE", "/api/sessions/current", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, "GET", "/api/sessions/current", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestSessionsController_FinishSession(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/sessions/current", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	sessionID := decodeBody(t, w)["id"].(string)

	// Finishing goes through POST /api/sessions with the same id
	w = doRequest(t, router, "POST", "/api/sessions",
		`{"id": "`+sessionID+`", "totalTime": 300, "endTime": 1700000300000,
		  "items": [{"name": "Scales", "timeSpent": 300}]}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "completed", body["status"])
	assert.EqualValues(t, 300, body["total_time"])

	// The completed session stays in the database after the pointer clears
	w = doRequest(t, router, "DELETE", "/api/sessions/current", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.DB.Model(&entities.Session{}).Where("id = ?", sessionID).Count(&count)
	assert.EqualValues(t, 1, count)

	w = doRequest(t, router, "GET", "/api/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sessionID)
}

func TestSessionsController_SnakeCaseItemPayload(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	// Snapshots exported in snake_case must round-trip through saves
	w := doRequest(t, router, "POST", "/api/sessions/current",
		`{"items": [{"id": "item-snake-00001", "name": "Scales",
		             "time_spent": 45, "category_id": "cat-tech", "started_at": 1700000000000}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	items, ok := body["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	item := items[0].(map[string]any)
	assert.EqualValues(t, 45, item["time_spent"])
	assert.Equal(t, "cat-tech", item["category_id"])
	assert.EqualValues(t, 1700000000000, item["started_at"])
}

func TestSessionsController_AddItem(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	categoryID := "cat-song"
	require.NoError(t, db.DB.Create(&entities.LibraryItem{
		ID: "lib-blackbird-01", Name: "Blackbird", CategoryID: &categoryID,
	}).Error)

	w := doRequest(t, router, "POST", "/api/sessions/current", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "POST", "/api/sessions/current/items",
		`{"libraryItemId": "lib-blackbird-01", "timeSpent": 60}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	items := body["items"].([]any)
	require.Len(t, items, 1)

	item := items[0].(map[string]any)
	assert.Equal(t, "Blackbird", item["name"])
	assert.Equal(t, "cat-song", item["category_id"])
	assert.EqualValues(t, 60, item["time_spent"])
}

func TestSessionsController_AddItem_NoCurrentSession(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.LibraryItem{
		ID: "lib-blackbird-01", Name: "Blackbird",
	}).Error)

	w := doRequest(t, router, "POST", "/api/sessions/current/items",
		`{"libraryItemId": "lib-blackbird-01", "timeSpent": 60}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no current session")
}

func TestSessionsController_AddItem_LibraryItemMissing(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/sessions/current", `{}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "POST", "/api/sessions/current/items",
		`{"libraryItemId": "lib-missing-0001", "timeSpent": 60}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionsController_AddItem_MissingLibraryItemID(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/sessions/current/items", `{"timeSpent": 60}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionsController_UpdateItemTime(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/sessions/current",
		`{"items": [{"id": "item-scales-00001", "name": "Scales", "timeSpent": 10}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "PUT", "/api/sessions/current/items/item-scales-00001",
		`{"timeSpent": 90}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.EqualValues(t, 90, items[0].(map[string]any)["time_spent"])
}

func TestSessionsController_DeleteSession(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/sessions",
		`{"date": "2025-05-01T10:00:00Z", "totalTime": 120}`)
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID := decodeBody(t, w)["id"].(string)

	w = doRequest(t, router, "DELETE", "/api/sessions/"+sessionID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, "GET", "/api/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), sessionID)
}

func TestSessionsController_UpdateSession(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/sessions",
		`{"date": "2025-05-01T10:00:00Z", "notes": "first pass"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID := decodeBody(t, w)["id"].(string)

	w = doRequest(t, router, "PUT", "/api/sessions/"+sessionID,
		`{"date": "2025-05-01T10:00:00Z", "notes": "edited", "totalTime": 450}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, sessionID, body["id"])
	assert.Equal(t, "edited", body["notes"])
	assert.EqualValues(t, 450, body["total_time"])
}

func TestSessionsController_InvalidPayload(t *testing.T) {
	router, _, cleanup := setupTestRouter(t)
	defer cleanup()

	w := doRequest(t, router, "POST", "/api/sessions/current", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
