package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fretlog/fretlog/internal/entities"
)

func colorRef(c string) *string { return &c }

var defaultCategories = []entities.Category{
	{ID: "cat-song", Name: "Song", Type: "Song", Icon: "🎵", Color: colorRef("#4f46e5")},
	{ID: "cat-theory", Name: "Theory", Type: "Theory", Icon: "📚", Color: colorRef("#0ea5e9")},
	{ID: "cat-lesson", Name: "Lesson", Type: "Lesson", Icon: "📖", Color: colorRef("#f59e0b")},
	{ID: "cat-ear", Name: "Ear Training", Type: "Ear Training", Icon: "👂", Color: colorRef("#10b981")},
	{ID: "cat-tech", Name: "Technique", Type: "Technique", Icon: "🎯", Color: colorRef("#ef4444")},
}

var defaultInstruments = []entities.Instrument{
	{ID: "inst-guitar", Name: "Guitar", Icon: "🎸"},
	{ID: "inst-piano", Name: "Piano", Icon: "🎹"},
	{ID: "inst-bass", Name: "Bass", Icon: "🎸"},
	{ID: "inst-drums", Name: "Drums", Icon: "🥁"},
}

// DefaultInstrumentID is assigned to the seeded user's profile.
const DefaultInstrumentID = "inst-guitar"

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	dsn := dbPath + "?_journal=WAL&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Category{},
		&entities.Instrument{},
		&entities.Artist{},
		&entities.LibraryItem{},
		&entities.Session{},
		&entities.SessionItem{},
		&entities.Setting{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := SeedDefaults(db); err != nil {
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SeedDefaults creates the implicit user and the fixed category/instrument
// sets when the corresponding tables are empty. It is called at startup and
// again by the factory reset, inside the reset's transaction.
func SeedDefaults(tx *gorm.DB) error {
	var userCount int64
	if err := tx.Model(&entities.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		user := entities.User{ID: NewID(), Name: "Musician"}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create default user: %w", err)
		}
	}

	var categoryCount int64
	if err := tx.Model(&entities.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if categoryCount == 0 {
		if err := tx.Create(&defaultCategories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
	}

	var instrumentCount int64
	if err := tx.Model(&entities.Instrument{}).Count(&instrumentCount).Error; err != nil {
		return err
	}
	if instrumentCount == 0 {
		if err := tx.Create(&defaultInstruments).Error; err != nil {
			return fmt.Errorf("failed to seed instruments: %w", err)
		}
		instrumentID := DefaultInstrumentID
		if err := tx.Model(&entities.User{}).
			Where("default_instrument_id IS NULL").
			Update("default_instrument_id", instrumentID).Error; err != nil {
			return fmt.Errorf("failed to set default instrument: %w", err)
		}
	}

	return nil
}

// GetUser returns the single implicit user row.
func (d *Database) GetUser() (*entities.User, error) {
	var user entities.User
	err := d.DB.First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser overwrites the profile fields of the implicit user.
func (d *Database) UpdateUser(name, email string, avatar, defaultInstrumentID *string) (*entities.User, error) {
	var user entities.User
	if err := d.DB.First(&user).Error; err != nil {
		return nil, err
	}

	user.Name = name
	user.Email = email
	user.Avatar = avatar
	user.DefaultInstrumentID = defaultInstrumentID
	if err := d.DB.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
