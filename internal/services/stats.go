package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/fretlog/fretlog/internal/entities"
)

// Summary holds total practice seconds per trailing window.
type Summary struct {
	Today   int64 `json:"today"`
	Week    int64 `json:"week"`
	Month   int64 `json:"month"`
	Year    int64 `json:"year"`
	AllTime int64 `json:"allTime"`
}

// Statistics sums completed sessions' total time over trailing windows.
// Window boundaries come from the injected clock's wall time, not from the
// sessions' own timestamps, so tests pin the clock instead of the server
// locale.
type Statistics struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStatistics creates a statistics service using the system clock.
func NewStatistics(db *gorm.DB) *Statistics {
	return &Statistics{db: db, now: time.Now}
}

// SetClock overrides the clock used for window boundaries.
func (s *Statistics) SetClock(now func() time.Time) {
	s.now = now
}

// Summary computes the today/week/month/year/all-time totals. The week
// starts on Sunday. Session dates are RFC3339 strings, so the boundary
// comparison is lexicographic.
func (s *Statistics) Summary() (*Summary, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	summary := &Summary{}

	windows := []struct {
		since string
		dest  *int64
	}{
		{dayStart.Format(time.RFC3339), &summary.Today},
		{weekStart.Format(time.RFC3339), &summary.Week},
		{monthStart.Format(time.RFC3339), &summary.Month},
		{yearStart.Format(time.RFC3339), &summary.Year},
	}
	for _, window := range windows {
		total, err := s.completedTotal(window.since)
		if err != nil {
			return nil, err
		}
		*window.dest = total
	}

	allTime, err := s.completedTotal("")
	if err != nil {
		return nil, err
	}
	summary.AllTime = allTime

	return summary, nil
}

func (s *Statistics) completedTotal(since string) (int64, error) {
	var total int64
	query := s.db.Model(&entities.Session{}).
		Where("status = ?", entities.SessionStatusCompleted)
	if since != "" {
		query = query.Where("date >= ?", since)
	}
	err := query.Select("COALESCE(SUM(total_time), 0)").Scan(&total).Error
	return total, err
}
