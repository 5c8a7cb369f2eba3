package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fretlog/fretlog/internal/entities"
	"github.com/fretlog/fretlog/internal/services"
)

func TestDataController_Export(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.LibraryItem{
		ID: "lib-export-0001", Name: "Blackbird",
	}).Error)

	w := doRequest(t, router, "GET", "/api/export", "")
	require.Equal(t, http.StatusOK, w.Code)

	var snapshot services.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))

	assert.Len(t, snapshot.Users, 1)
	assert.Len(t, snapshot.Categories, 5)
	assert.Len(t, snapshot.Instruments, 4)
	require.Len(t, snapshot.LibraryItems, 1)
	assert.Equal(t, "Blackbird", snapshot.LibraryItems[0].Name)
}

func TestDataController_ImportRoundTrip(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.LibraryItem{
		ID: "lib-export-0001", Name: "Blackbird",
	}).Error)

	w := doRequest(t, router, "GET", "/api/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.String()

	// Wipe, then import the snapshot back
	w = doRequest(t, router, "POST", "/api/clear", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "POST", "/api/import", exported)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Data imported successfully")

	var item entities.LibraryItem
	require.NoError(t, db.DB.Where("id = ?", "lib-export-0001").First(&item).Error)
	assert.Equal(t, "Blackbird", item.Name)
}

func TestDataController_Import_InvalidSnapshot(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	// A session without a date fails the import and rolls everything back
	w := doRequest(t, router, "POST", "/api/import",
		`{"artists": [{"id": "ext-artist-00001", "name": "Valid Artist"}],
		  "sessions": [{"id": "ext-session-0001", "status": "completed"}]}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var artistCount int64
	db.DB.Model(&entities.Artist{}).Count(&artistCount)
	assert.Zero(t, artistCount)
}

func TestDataController_Clear(t *testing.T) {
	router, db, cleanup := setupTestRouter(t)
	defer cleanup()

	require.NoError(t, db.DB.Create(&entities.Session{
		ID: "session-wipe-01", Status: entities.SessionStatusCompleted, Date: "2025-05-01T10:00:00Z",
	}).Error)

	w := doRequest(t, router, "POST", "/api/theme", `{"theme": "dark"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "POST", "/api/clear", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "All data cleared")

	var sessionCount int64
	db.DB.Model(&entities.Session{}).Count(&sessionCount)
	assert.Zero(t, sessionCount)

	// Theme and the seeded defaults survive the reset
	w = doRequest(t, router, "GET", "/api/theme", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dark", decodeBody(t, w)["theme"])

	var categoryCount int64
	db.DB.Model(&entities.Category{}).Count(&categoryCount)
	assert.EqualValues(t, 5, categoryCount)
}
