package database

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns an opaque 16-character hex identifier. Entity ids are
// assigned once at creation and never reused.
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
}
