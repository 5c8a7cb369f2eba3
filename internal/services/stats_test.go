package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fretlog/fretlog/internal/entities"
)

func createCompletedSession(t *testing.T, db *gorm.DB, id, date string, totalTime int) {
	t.Helper()
	session := entities.Session{
		ID:        id,
		Status:    entities.SessionStatusCompleted,
		Date:      date,
		TotalTime: totalTime,
	}
	require.NoError(t, db.Create(&session).Error)
}

func TestStatistics_Summary(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	// Wednesday, 2025-06-18. The week starts on Sunday 2025-06-15.
	clock := func() time.Time {
		return time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)
	}

	createCompletedSession(t, db, "session-today-01", "2025-06-18T10:00:00Z", 600)
	createCompletedSession(t, db, "session-week-001", "2025-06-16T10:00:00Z", 300)
	createCompletedSession(t, db, "session-month-01", "2025-06-02T10:00:00Z", 200)
	createCompletedSession(t, db, "session-year-001", "2025-02-01T10:00:00Z", 100)
	createCompletedSession(t, db, "session-old-0001", "2024-05-01T10:00:00Z", 50)

	// Running sessions never count
	running := entities.Session{
		ID:        "session-running1",
		Status:    entities.SessionStatusRunning,
		Date:      "2025-06-18T12:00:00Z",
		TotalTime: 999,
	}
	require.NoError(t, db.Create(&running).Error)

	stats := NewStatistics(db)
	stats.SetClock(clock)

	summary, err := stats.Summary()
	require.NoError(t, err)

	assert.EqualValues(t, 600, summary.Today)
	assert.EqualValues(t, 900, summary.Week)
	assert.EqualValues(t, 1100, summary.Month)
	assert.EqualValues(t, 1200, summary.Year)
	assert.EqualValues(t, 1250, summary.AllTime)
}

func TestStatistics_Summary_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	stats := NewStatistics(db)
	stats.SetClock(func() time.Time {
		return time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)
	})

	summary, err := stats.Summary()
	require.NoError(t, err)

	assert.Zero(t, summary.Today)
	assert.Zero(t, summary.Week)
	assert.Zero(t, summary.Month)
	assert.Zero(t, summary.Year)
	assert.Zero(t, summary.AllTime)
}

func TestStatistics_Summary_SundayWeekStart(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	// The clock lands on a Sunday; the week window covers only that day
	stats := NewStatistics(db)
	stats.SetClock(func() time.Time {
		return time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	})

	createCompletedSession(t, db, "session-sunday-1", "2025-06-15T08:00:00Z", 120)
	createCompletedSession(t, db, "session-saturd1", "2025-06-14T20:00:00Z", 60)

	summary, err := stats.Summary()
	require.NoError(t, err)

	assert.EqualValues(t, 120, summary.Today)
	assert.EqualValues(t, 120, summary.Week)
	assert.EqualValues(t, 180, summary.Month)
}
