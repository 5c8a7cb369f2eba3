// Package library provides database operations for practice library items.
package library

import (
	"time"

	"gorm.io/gorm"

	"github.com/fretlog/fretlog/internal/database"
	"github.com/fretlog/fretlog/internal/entities"
)

// Repository handles library item database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAll returns all library items, newest first.
func (r *Repository) GetAll() ([]entities.LibraryItem, error) {
	items := make([]entities.LibraryItem, 0)
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *Repository) GetByID(id string) (*entities.LibraryItem, error) {
	var item entities.LibraryItem
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) Create(item *entities.LibraryItem) error {
	if item.ID == "" {
		item.ID = database.NewID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	return r.db.Create(item).Error
}

// ItemUpdate carries the fields a partial update may change. Nil fields
// are left untouched.
type ItemUpdate struct {
	Name       *string
	CategoryID *string
	ArtistID   *string
	StarRating *int
	Notes      *string
}

// Update applies a partial update and returns the updated row.
func (r *Repository) Update(id string, update ItemUpdate) (*entities.LibraryItem, error) {
	updates := map[string]any{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.CategoryID != nil {
		updates["category_id"] = *update.CategoryID
	}
	if update.ArtistID != nil {
		updates["artist_id"] = *update.ArtistID
	}
	if update.StarRating != nil {
		updates["star_rating"] = *update.StarRating
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}

	if len(updates) > 0 {
		err := r.db.Model(&entities.LibraryItem{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return r.GetByID(id)
}

func (r *Repository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entities.LibraryItem{}).Error
}
