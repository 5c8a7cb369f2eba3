package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/database"
	"github.com/fretlog/fretlog/internal/entities"
)

// InitController serves the aggregate cold-start payload so the client
// needs a single request on page load.
type InitController struct {
	db        *database.Database
	sessions  SessionStore
	reference ReferenceStore
	library   LibraryStore
	settings  SettingsStore
}

func NewInitController(db *database.Database, sessions SessionStore, reference ReferenceStore, library LibraryStore, settings SettingsStore) *InitController {
	return &InitController{
		db:        db,
		sessions:  sessions,
		reference: reference,
		library:   library,
		settings:  settings,
	}
}

// GetInit returns all startup data in one response
// GET /api/init
func (ic *InitController) GetInit(c *gin.Context) {
	user, err := ic.db.GetUser()
	if err != nil {
		respondInternalError(c, err, "init: user")
		return
	}

	categories, err := ic.reference.GetAllCategories()
	if err != nil {
		respondInternalError(c, err, "init: categories")
		return
	}
	instruments, err := ic.reference.GetAllInstruments()
	if err != nil {
		respondInternalError(c, err, "init: instruments")
		return
	}
	artists, err := ic.reference.GetAllArtists()
	if err != nil {
		respondInternalError(c, err, "init: artists")
		return
	}

	libraryItems, err := ic.library.GetAll()
	if err != nil {
		respondInternalError(c, err, "init: library")
		return
	}

	completed, err := ic.sessions.GetCompleted()
	if err != nil {
		respondInternalError(c, err, "init: sessions")
		return
	}
	current, err := ic.sessions.Current()
	if err != nil {
		respondInternalError(c, err, "init: current session")
		return
	}

	theme, err := ic.settings.GetValue(entities.SettingKeyTheme, "dark")
	if err != nil {
		respondInternalError(c, err, "init: theme")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":           user,
		"categories":     categories,
		"instruments":    instruments,
		"artists":        artists,
		"library":        libraryItems,
		"sessions":       completed,
		"currentSession": current,
		"theme":          theme,
	})
}
