package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/entities"
)

// ReferenceStore defines database operations for the lookup tables.
type ReferenceStore interface {
	GetAllCategories() ([]entities.Category, error)
	GetCategoryByID(id string) (*entities.Category, error)
	CreateCategory(category *entities.Category) error
	UpdateCategory(category *entities.Category) error
	DeleteCategory(id string) error

	GetAllInstruments() ([]entities.Instrument, error)
	GetInstrumentByID(id string) (*entities.Instrument, error)
	CreateInstrument(instrument *entities.Instrument) error
	UpdateInstrument(instrument *entities.Instrument) error
	DeleteInstrument(id string) error

	GetAllArtists() ([]entities.Artist, error)
	GetOrCreateArtist(name string) (*entities.Artist, error)
	UpdateArtist(artist *entities.Artist) error
	DeleteArtist(id string) error
}

type ReferenceController struct {
	store ReferenceStore
}

func NewReferenceController(store ReferenceStore) *ReferenceController {
	return &ReferenceController{store: store}
}

// --- Categories ---

// GetCategories returns all categories
// GET /api/categories
func (rc *ReferenceController) GetCategories(c *gin.Context) {
	categories, err := rc.store.GetAllCategories()
	if err != nil {
		respondInternalError(c, err, "get categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// AddCategory creates a new category
// POST /api/categories
func (rc *ReferenceController) AddCategory(c *gin.Context) {
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Type  string  `json:"type"`
		Icon  string  `json:"icon"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	if req.Icon == "" {
		req.Icon = "🎵"
	}
	category := entities.Category{Name: req.Name, Type: req.Type, Icon: req.Icon, Color: req.Color}
	if err := rc.store.CreateCategory(&category); err != nil {
		respondInternalError(c, err, "add category")
		return
	}
	respondCreated(c, category)
}

// UpdateCategory overwrites a category's fields
// PUT /api/categories/:id
func (rc *ReferenceController) UpdateCategory(c *gin.Context) {
	var req struct {
		Name  string  `json:"name" binding:"required"`
		Type  string  `json:"type"`
		Icon  string  `json:"icon"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	category, err := rc.store.GetCategoryByID(c.Param("id"))
	if err != nil {
		respondNotFound(c, "category")
		return
	}

	category.Name = req.Name
	category.Type = req.Type
	category.Icon = req.Icon
	category.Color = req.Color
	if err := rc.store.UpdateCategory(category); err != nil {
		respondInternalError(c, err, "update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category
// DELETE /api/categories/:id
func (rc *ReferenceController) DeleteCategory(c *gin.Context) {
	if err := rc.store.DeleteCategory(c.Param("id")); err != nil {
		respondInternalError(c, err, "delete category")
		return
	}
	respondNoContent(c)
}

// --- Instruments ---

// GetInstruments returns all instruments
// GET /api/instruments
func (rc *ReferenceController) GetInstruments(c *gin.Context) {
	instruments, err := rc.store.GetAllInstruments()
	if err != nil {
		respondInternalError(c, err, "get instruments")
		return
	}
	c.JSON(http.StatusOK, instruments)
}

// AddInstrument creates a new instrument
// POST /api/instruments
func (rc *ReferenceController) AddInstrument(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Icon string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	if req.Icon == "" {
		req.Icon = "🎸"
	}
	instrument := entities.Instrument{Name: req.Name, Icon: req.Icon}
	if err := rc.store.CreateInstrument(&instrument); err != nil {
		respondInternalError(c, err, "add instrument")
		return
	}
	respondCreated(c, instrument)
}

// UpdateInstrument overwrites an instrument's fields
// PUT /api/instruments/:id
func (rc *ReferenceController) UpdateInstrument(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Icon string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	instrument, err := rc.store.GetInstrumentByID(c.Param("id"))
	if err != nil {
		respondNotFound(c, "instrument")
		return
	}

	instrument.Name = req.Name
	instrument.Icon = req.Icon
	if err := rc.store.UpdateInstrument(instrument); err != nil {
		respondInternalError(c, err, "update instrument")
		return
	}
	c.JSON(http.StatusOK, instrument)
}

// DeleteInstrument removes an instrument
// DELETE /api/instruments/:id
func (rc *ReferenceController) DeleteInstrument(c *gin.Context) {
	if err := rc.store.DeleteInstrument(c.Param("id")); err != nil {
		respondInternalError(c, err, "delete instrument")
		return
	}
	respondNoContent(c)
}

// --- Artists ---

// GetArtists returns all artists
// GET /api/artists
func (rc *ReferenceController) GetArtists(c *gin.Context) {
	artists, err := rc.store.GetAllArtists()
	if err != nil {
		respondInternalError(c, err, "get artists")
		return
	}
	c.JSON(http.StatusOK, artists)
}

// AddArtist returns the existing artist with the same name or creates one
// POST /api/artists
func (rc *ReferenceController) AddArtist(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	artist, err := rc.store.GetOrCreateArtist(req.Name)
	if err != nil {
		respondInternalError(c, err, "add artist")
		return
	}
	respondCreated(c, artist)
}

// UpdateArtist renames an artist
// PUT /api/artists/:id
func (rc *ReferenceController) UpdateArtist(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	artist := entities.Artist{ID: c.Param("id"), Name: req.Name}
	if err := rc.store.UpdateArtist(&artist); err != nil {
		respondInternalError(c, err, "update artist")
		return
	}
	c.JSON(http.StatusOK, artist)
}

// DeleteArtist removes an artist
// DELETE /api/artists/:id
func (rc *ReferenceController) DeleteArtist(c *gin.Context) {
	if err := rc.store.DeleteArtist(c.Param("id")); err != nil {
		respondInternalError(c, err, "delete artist")
		return
	}
	respondNoContent(c)
}
