package entities

import (
	"time"
)

type SessionStatus string

const (
	SessionStatusRunning   SessionStatus = "running"
	SessionStatusCompleted SessionStatus = "completed"
)

// User is the single implicit profile row. There is no authentication;
// the first (and only) user is created during seeding.
type User struct {
	ID                  string    `gorm:"primaryKey;size:32" json:"id"`
	Name                string    `gorm:"size:100;default:'Musician'" json:"name"`
	Email               string    `gorm:"size:255;default:''" json:"email"`
	Avatar              *string   `gorm:"size:2048" json:"avatar"`
	DefaultInstrumentID *string   `gorm:"size:32" json:"default_instrument_id"`
	CreatedAt           time.Time `json:"created_at"`
}

type Category struct {
	ID    string  `gorm:"primaryKey;size:32" json:"id"`
	Name  string  `gorm:"size:100" json:"name"`
	Type  string  `gorm:"size:50" json:"type"`
	Icon  string  `gorm:"size:20;default:'🎵'" json:"icon"`
	Color *string `gorm:"size:10" json:"color"`
}

type Instrument struct {
	ID   string `gorm:"primaryKey;size:32" json:"id"`
	Name string `gorm:"size:100" json:"name"`
	Icon string `gorm:"size:20;default:'🎸'" json:"icon"`
}

type Artist struct {
	ID   string `gorm:"primaryKey;size:32" json:"id"`
	Name string `gorm:"size:256" json:"name"`
}

type LibraryItem struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"`
	Name       string    `gorm:"size:256" json:"name"`
	CategoryID *string   `gorm:"index;size:32" json:"category_id"`
	ArtistID   *string   `gorm:"index;size:32" json:"artist_id"`
	StarRating int       `gorm:"default:0" json:"star_rating"`
	Notes      string    `gorm:"type:text;default:''" json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session is a practice session. A running session is the "current" one,
// tracked by the current_session setting. Cancellation deletes the row;
// there is no cancelled status.
type Session struct {
	ID           string        `gorm:"primaryKey;size:32" json:"id"`
	InstrumentID *string       `gorm:"index;size:32" json:"instrument_id"`
	Status       SessionStatus `gorm:"index;size:20;default:'running'" json:"status"`
	Date         string        `gorm:"index;size:40" json:"date"` // logical session date, RFC3339
	StartTime    *int64        `json:"start_time"`                // epoch millis
	EndTime      *int64        `json:"end_time"`
	TotalTime    int           `gorm:"default:0" json:"total_time"` // accumulated seconds
	Notes        string        `gorm:"type:text;default:''" json:"notes"`
	CreatedAt    time.Time     `json:"created_at"`

	Items []SessionItem `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"items"`
}

// SessionItem records time logged against a library item within a session.
// Name and CategoryID are snapshots taken at log time: renaming or deleting
// the library item later must not rewrite practice history.
type SessionItem struct {
	ID            string  `gorm:"primaryKey;size:32" json:"id"`
	SessionID     string  `gorm:"index;size:32" json:"session_id"`
	LibraryItemID *string `gorm:"size:32" json:"library_item_id"`
	Name          string  `gorm:"size:256" json:"name"`
	CategoryID    *string `gorm:"size:32" json:"category_id"`
	TimeSpent     int     `gorm:"default:0" json:"time_spent"` // seconds
	StartedAt     *int64  `json:"started_at"`                  // epoch millis
}

func (User) TableName() string {
	return "users"
}

func (Category) TableName() string {
	return "categories"
}

func (Instrument) TableName() string {
	return "instruments"
}

func (Artist) TableName() string {
	return "artists"
}

func (LibraryItem) TableName() string {
	return "library_items"
}

func (Session) TableName() string {
	return "sessions"
}

func (SessionItem) TableName() string {
	return "session_items"
}
