// Package reference provides database operations for the small lookup
// tables: categories, instruments and artists. Name comparisons are
// case-insensitive; the reconciliation import relies on the FindXByName
// lookups to avoid inserting duplicate rows.
package reference

import (
	"gorm.io/gorm"

	"github.com/fretlog/fretlog/internal/database"
	"github.com/fretlog/fretlog/internal/entities"
)

// Repository handles category, instrument and artist database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reference repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// --- Categories ---

func (r *Repository) GetAllCategories() ([]entities.Category, error) {
	categories := make([]entities.Category, 0)
	err := r.db.Find(&categories).Error
	return categories, err
}

func (r *Repository) GetCategoryByID(id string) (*entities.Category, error) {
	var category entities.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindCategoryByName looks up a category by case-insensitive name.
func (r *Repository) FindCategoryByName(name string) (*entities.Category, error) {
	var category entities.Category
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *Repository) CreateCategory(category *entities.Category) error {
	if category.ID == "" {
		category.ID = database.NewID()
	}
	return r.db.Create(category).Error
}

func (r *Repository) UpdateCategory(category *entities.Category) error {
	return r.db.Save(category).Error
}

func (r *Repository) DeleteCategory(id string) error {
	return r.db.Where("id = ?", id).Delete(&entities.Category{}).Error
}

// --- Instruments ---

func (r *Repository) GetAllInstruments() ([]entities.Instrument, error) {
	instruments := make([]entities.Instrument, 0)
	err := r.db.Find(&instruments).Error
	return instruments, err
}

func (r *Repository) GetInstrumentByID(id string) (*entities.Instrument, error) {
	var instrument entities.Instrument
	err := r.db.Where("id = ?", id).First(&instrument).Error
	if err != nil {
		return nil, err
	}
	return &instrument, nil
}

// FindInstrumentByName looks up an instrument by case-insensitive name.
func (r *Repository) FindInstrumentByName(name string) (*entities.Instrument, error) {
	var instrument entities.Instrument
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&instrument).Error
	if err != nil {
		return nil, err
	}
	return &instrument, nil
}

func (r *Repository) CreateInstrument(instrument *entities.Instrument) error {
	if instrument.ID == "" {
		instrument.ID = database.NewID()
	}
	return r.db.Create(instrument).Error
}

func (r *Repository) UpdateInstrument(instrument *entities.Instrument) error {
	return r.db.Save(instrument).Error
}

func (r *Repository) DeleteInstrument(id string) error {
	return r.db.Where("id = ?", id).Delete(&entities.Instrument{}).Error
}

// --- Artists ---

func (r *Repository) GetAllArtists() ([]entities.Artist, error) {
	artists := make([]entities.Artist, 0)
	err := r.db.Find(&artists).Error
	return artists, err
}

// FindArtistByName looks up an artist by case-insensitive name.
func (r *Repository) FindArtistByName(name string) (*entities.Artist, error) {
	var artist entities.Artist
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&artist).Error
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// GetOrCreateArtist returns the existing artist with the same name
// (case-insensitive) or creates a new one.
func (r *Repository) GetOrCreateArtist(name string) (*entities.Artist, error) {
	artist, err := r.FindArtistByName(name)
	if err == gorm.ErrRecordNotFound {
		artist = &entities.Artist{ID: database.NewID(), Name: name}
		if err := r.db.Create(artist).Error; err != nil {
			return nil, err
		}
		return artist, nil
	}
	if err != nil {
		return nil, err
	}
	return artist, nil
}

func (r *Repository) UpdateArtist(artist *entities.Artist) error {
	return r.db.Save(artist).Error
}

func (r *Repository) DeleteArtist(id string) error {
	return r.db.Where("id = ?", id).Delete(&entities.Artist{}).Error
}
