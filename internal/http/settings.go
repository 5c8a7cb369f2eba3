package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/entities"
)

// SettingsStore defines key-value settings access for the HTTP layer.
type SettingsStore interface {
	GetValue(key, fallback string) (string, error)
	SetSetting(key, value string) error
}

type SettingsController struct {
	store SettingsStore
}

func NewSettingsController(store SettingsStore) *SettingsController {
	return &SettingsController{store: store}
}

// GetTheme returns the stored theme, defaulting to light
// GET /api/theme
func (sc *SettingsController) GetTheme(c *gin.Context) {
	theme, err := sc.store.GetValue(entities.SettingKeyTheme, "light")
	if err != nil {
		respondInternalError(c, err, "get theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// SetTheme stores the theme
// POST /api/theme
func (sc *SettingsController) SetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid payload")
		return
	}
	if req.Theme == "" {
		req.Theme = "light"
	}

	if err := sc.store.SetSetting(entities.SettingKeyTheme, req.Theme); err != nil {
		respondInternalError(c, err, "set theme")
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
