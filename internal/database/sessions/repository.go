// Package sessions implements the practice-session lifecycle: the singleton
// current-session pointer, the running/completed state machine, and the
// delete-all/re-insert item replacement that session saves use.
//
// Every operation that touches both session rows and the current_session
// setting runs inside one transaction, so the pointer can never reference a
// session that failed to commit.
package sessions

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fretlog/fretlog/internal/database"
	"github.com/fretlog/fretlog/internal/entities"
)

var (
	// ErrNoCurrentSession is returned when an operation requires a current
	// session and the current_session setting is absent.
	ErrNoCurrentSession = errors.New("no current session")

	// ErrLibraryItemNotFound is returned when appending an item that
	// references a library item that does not exist.
	ErrLibraryItemNotFound = errors.New("library item not found")

	// ErrSessionNotFound is returned when a referenced session is absent.
	ErrSessionNotFound = errors.New("session not found")
)

// ItemInput is an incoming session item. Name and CategoryID are the
// caller-supplied snapshots; they are stored as-is, never re-resolved.
type ItemInput struct {
	ID            string
	LibraryItemID *string
	Name          string
	CategoryID    *string
	TimeSpent     int
	StartedAt     *int64
}

// SessionInput is an incoming session payload for save operations.
type SessionInput struct {
	ID           string
	InstrumentID *string
	Status       entities.SessionStatus
	Date         string
	StartTime    *int64
	EndTime      *int64
	TotalTime    int
	Notes        string
	Items        []ItemInput
}

// Repository handles session and session item database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetCompleted returns all completed sessions with their items, newest
// logical date first.
func (r *Repository) GetCompleted() ([]entities.Session, error) {
	sessions := make([]entities.Session, 0)
	err := r.db.Preload("Items").
		Where("status = ?", entities.SessionStatusCompleted).
		Order("date DESC").
		Find(&sessions).Error
	return sessions, err
}

// GetByID returns a session with its items.
func (r *Repository) GetByID(id string) (*entities.Session, error) {
	var session entities.Session
	err := r.db.Preload("Items").Where("id = ?", id).First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Current returns the session pointed to by the current_session setting,
// or nil when no pointer is set or the pointed-to row is gone.
func (r *Repository) Current() (*entities.Session, error) {
	id, err := currentSessionID(r.db)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}

	var session entities.Session
	err = r.db.Preload("Items").Where("id = ?", id).First(&session).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SaveCurrent starts or resumes the current session: it upserts the session
// row (status defaults to running), fully replaces its item set, and points
// the current_session setting at it.
func (r *Repository) SaveCurrent(input SessionInput) (*entities.Session, error) {
	if input.ID == "" {
		input.ID = database.NewID()
	}
	if input.Status == "" {
		input.Status = entities.SessionStatusRunning
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSession(tx, &input, false); err != nil {
			return err
		}
		if err := replaceItems(tx, input.ID, input.Items); err != nil {
			return err
		}
		return setCurrentSessionID(tx, input.ID)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(input.ID)
}

// Save adds or updates a session without touching the current-session
// pointer. This is the finish path: status defaults to completed and the
// end time is written. The item set is fully replaced.
func (r *Repository) Save(input SessionInput) (*entities.Session, error) {
	if input.ID == "" {
		input.ID = database.NewID()
	}
	if input.Status == "" {
		input.Status = entities.SessionStatusCompleted
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertSession(tx, &input, true); err != nil {
			return err
		}
		return replaceItems(tx, input.ID, input.Items)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(input.ID)
}

// AppendCurrentItem logs a new item against the current session,
// snapshotting the library item's name and category. TotalTime is not
// touched; callers recompute it from items on the next save.
func (r *Repository) AppendCurrentItem(libraryItemID string, timeSpent int, startedAt *int64) (*entities.Session, error) {
	var sessionID string

	err := r.db.Transaction(func(tx *gorm.DB) error {
		id, err := currentSessionID(tx)
		if err != nil {
			return err
		}
		if id == "" {
			return ErrNoCurrentSession
		}
		sessionID = id

		var libraryItem entities.LibraryItem
		err = tx.Where("id = ?", libraryItemID).First(&libraryItem).Error
		if err == gorm.ErrRecordNotFound {
			return ErrLibraryItemNotFound
		}
		if err != nil {
			return err
		}

		started := startedAt
		if started == nil {
			now := time.Now().UnixMilli()
			started = &now
		}

		item := entities.SessionItem{
			ID:            database.NewID(),
			SessionID:     sessionID,
			LibraryItemID: &libraryItem.ID,
			Name:          libraryItem.Name,
			CategoryID:    libraryItem.CategoryID,
			TimeSpent:     timeSpent,
			StartedAt:     started,
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(sessionID)
}

// UpdateCurrentItemTime overwrites an item's elapsed seconds and returns
// the current session. A missing item id is not an error; the update is
// simply a no-op. Returns nil when no current session is set.
func (r *Repository) UpdateCurrentItemTime(itemID string, timeSpent int) (*entities.Session, error) {
	err := r.db.Model(&entities.SessionItem{}).
		Where("id = ?", itemID).
		Update("time_spent", timeSpent).Error
	if err != nil {
		return nil, err
	}

	return r.Current()
}

// ClearCurrent resolves the current-session pointer and clears it. A still
// running session is treated as abandoned and hard-deleted together with
// its items; a completed one (a finish already happened) is preserved.
// No-op when no pointer is set.
func (r *Repository) ClearCurrent() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		id, err := currentSessionID(tx)
		if err != nil {
			return err
		}

		if id != "" {
			var session entities.Session
			err := tx.Where("id = ?", id).First(&session).Error
			if err != nil && err != gorm.ErrRecordNotFound {
				return err
			}
			if err == nil && session.Status == entities.SessionStatusRunning {
				if err := deleteSessionRows(tx, id); err != nil {
					return err
				}
			}
		}

		return tx.Where("key = ?", entities.SettingKeyCurrentSession).Delete(&entities.Setting{}).Error
	})
}

// Delete hard-deletes a session and its items regardless of status. When
// the deleted session was the current one, the pointer is cleared as well
// rather than left dangling.
func (r *Repository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteSessionRows(tx, id); err != nil {
			return err
		}

		current, err := currentSessionID(tx)
		if err != nil {
			return err
		}
		if current == id {
			return tx.Where("key = ?", entities.SettingKeyCurrentSession).Delete(&entities.Setting{}).Error
		}
		return nil
	})
}

// upsertSession updates the mutable fields of an existing session or
// inserts a new row. withEndTime controls whether end_time is overwritten;
// the current-session save path leaves it alone.
func upsertSession(tx *gorm.DB, input *SessionInput, withEndTime bool) error {
	if input.Date == "" {
		input.Date = time.Now().Format(time.RFC3339)
	}

	var existing entities.Session
	result := tx.Where("id = ?", input.ID).First(&existing)
	if result.Error == gorm.ErrRecordNotFound {
		session := entities.Session{
			ID:           input.ID,
			InstrumentID: input.InstrumentID,
			Status:       input.Status,
			Date:         input.Date,
			StartTime:    input.StartTime,
			EndTime:      input.EndTime,
			TotalTime:    input.TotalTime,
			Notes:        input.Notes,
			CreatedAt:    time.Now(),
		}
		return tx.Create(&session).Error
	}
	if result.Error != nil {
		return result.Error
	}

	updates := map[string]any{
		"instrument_id": input.InstrumentID,
		"status":        input.Status,
		"date":          input.Date,
		"start_time":    input.StartTime,
		"total_time":    input.TotalTime,
		"notes":         input.Notes,
	}
	if withEndTime {
		updates["end_time"] = input.EndTime
	}
	return tx.Model(&entities.Session{}).Where("id = ?", input.ID).Updates(updates).Error
}

// replaceItems deletes a session's items and re-inserts the supplied set.
// Item ids are globally unique: an incoming id that survives under another
// session is relocated (the old row is deleted first) rather than rejected.
func replaceItems(tx *gorm.DB, sessionID string, items []ItemInput) error {
	if err := tx.Where("session_id = ?", sessionID).Delete(&entities.SessionItem{}).Error; err != nil {
		return err
	}

	for _, input := range items {
		if input.ID == "" {
			input.ID = database.NewID()
		}

		if err := tx.Where("id = ?", input.ID).Delete(&entities.SessionItem{}).Error; err != nil {
			return err
		}

		item := entities.SessionItem{
			ID:            input.ID,
			SessionID:     sessionID,
			LibraryItemID: input.LibraryItemID,
			Name:          input.Name,
			CategoryID:    input.CategoryID,
			TimeSpent:     input.TimeSpent,
			StartedAt:     input.StartedAt,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteSessionRows(tx *gorm.DB, id string) error {
	if err := tx.Where("session_id = ?", id).Delete(&entities.SessionItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&entities.Session{}).Error
}

// currentSessionID reads the current-session pointer, returning "" when it
// is absent.
func currentSessionID(tx *gorm.DB) (string, error) {
	var setting entities.Setting
	err := tx.Where("key = ?", entities.SettingKeyCurrentSession).First(&setting).Error
	if err == gorm.ErrRecordNotFound {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func setCurrentSessionID(tx *gorm.DB, id string) error {
	var setting entities.Setting
	result := tx.Where("key = ?", entities.SettingKeyCurrentSession).First(&setting)
	if result.Error == gorm.ErrRecordNotFound {
		setting = entities.Setting{Key: entities.SettingKeyCurrentSession, Value: id}
		return tx.Create(&setting).Error
	}
	if result.Error != nil {
		return result.Error
	}
	setting.Value = id
	return tx.Save(&setting).Error
}
