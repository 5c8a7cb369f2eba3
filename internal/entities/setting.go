package entities

import (
	"time"
)

type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Setting) TableName() string {
	return "settings"
}

// Known setting keys
const (
	// SettingKeyCurrentSession holds the id of the at-most-one running
	// session. Absent when no session is in progress.
	SettingKeyCurrentSession = "current_session"

	// SettingKeyTheme holds the UI theme name.
	SettingKeyTheme = "theme"
)
