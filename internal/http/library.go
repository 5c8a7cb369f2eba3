package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fretlog/fretlog/internal/database/library"
	"github.com/fretlog/fretlog/internal/entities"
)

// LibraryStore defines database operations for library items.
type LibraryStore interface {
	GetAll() ([]entities.LibraryItem, error)
	GetByID(id string) (*entities.LibraryItem, error)
	Create(item *entities.LibraryItem) error
	Update(id string, update library.ItemUpdate) (*entities.LibraryItem, error)
	Delete(id string) error
}

type LibraryController struct {
	store LibraryStore
}

func NewLibraryController(store LibraryStore) *LibraryController {
	return &LibraryController{store: store}
}

// GetLibrary returns all library items, newest first
// GET /api/library
func (lc *LibraryController) GetLibrary(c *gin.Context) {
	items, err := lc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "get library")
		return
	}
	c.JSON(http.StatusOK, items)
}

// AddLibraryItem creates a new library item
// POST /api/library
func (lc *LibraryController) AddLibraryItem(c *gin.Context) {
	var req struct {
		Name       string  `json:"name" binding:"required"`
		CategoryID *string `json:"categoryId"`
		ArtistID   *string `json:"artistId"`
		StarRating int     `json:"starRating"`
		Notes      string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	item := entities.LibraryItem{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		ArtistID:   req.ArtistID,
		StarRating: req.StarRating,
		Notes:      req.Notes,
	}
	if err := lc.store.Create(&item); err != nil {
		respondInternalError(c, err, "add library item")
		return
	}
	respondCreated(c, item)
}

// UpdateLibraryItem applies a partial update
// PUT /api/library/:id
func (lc *LibraryController) UpdateLibraryItem(c *gin.Context) {
	var req struct {
		Name       *string `json:"name"`
		CategoryID *string `json:"categoryId"`
		ArtistID   *string `json:"artistId"`
		StarRating *int    `json:"starRating"`
		Notes      *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid payload")
		return
	}

	item, err := lc.store.Update(c.Param("id"), library.ItemUpdate{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		ArtistID:   req.ArtistID,
		StarRating: req.StarRating,
		Notes:      req.Notes,
	})
	if err != nil {
		respondNotFound(c, "library item")
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteLibraryItem removes a library item. Session items that referenced
// it keep their snapshots; history is not rewritten.
// DELETE /api/library/:id
func (lc *LibraryController) DeleteLibraryItem(c *gin.Context) {
	if err := lc.store.Delete(c.Param("id")); err != nil {
		respondInternalError(c, err, "delete library item")
		return
	}
	respondNoContent(c)
}
