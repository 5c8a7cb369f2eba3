// Package services holds the reconciliation engine (snapshot export/import
// and factory reset) and the statistics service. Both operate on the
// Session Engine's data model; neither keeps state of its own.
package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fretlog/fretlog/internal/database"
	"github.com/fretlog/fretlog/internal/entities"
)

// Snapshot is the full-store backup format: one slice per table. Reference
// rows (categories, instruments, artists) are merged by name on import;
// everything else is keyed by its own id.
type Snapshot struct {
	Users        []entities.User        `json:"users"`
	Categories   []entities.Category    `json:"categories"`
	Instruments  []entities.Instrument  `json:"instruments"`
	Artists      []entities.Artist      `json:"artists"`
	LibraryItems []entities.LibraryItem `json:"library_items"`
	Sessions     []entities.Session     `json:"sessions"`
	SessionItems []entities.SessionItem `json:"session_items"`
	Settings     []entities.Setting     `json:"settings"`
}

// Reconciler implements snapshot export, merging import and factory reset.
type Reconciler struct {
	db *gorm.DB
}

// NewReconciler creates a reconciler over the given database.
func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{db: db}
}

// Export reads every table into a Snapshot. Read-only.
func (r *Reconciler) Export() (*Snapshot, error) {
	snap := &Snapshot{}

	steps := []struct {
		name string
		dest any
	}{
		{"users", &snap.Users},
		{"categories", &snap.Categories},
		{"instruments", &snap.Instruments},
		{"artists", &snap.Artists},
		{"library_items", &snap.LibraryItems},
		{"sessions", &snap.Sessions},
		{"session_items", &snap.SessionItems},
		{"settings", &snap.Settings},
	}
	for _, step := range steps {
		if err := r.db.Table(step.name).Find(step.dest).Error; err != nil {
			return nil, fmt.Errorf("export %s: %w", step.name, err)
		}
	}

	// Sessions are exported flat; items travel in their own slice.
	for i := range snap.Sessions {
		snap.Sessions[i].Items = nil
	}

	return snap, nil
}

// Import merges a snapshot into the store as one failure unit: any error
// rolls back every write made in the same call.
//
// Reference rows are resolved by case-insensitive name; a match means the
// incoming record overwrites the existing row's mutable fields and the
// incoming id is discarded. Dependent records in the same payload that
// referenced a discarded id are rewritten to the resolved one. Library
// items, sessions, session items and settings are historical facts and are
// inserted-or-overwritten by their own key.
func (r *Reconciler) Import(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("no data provided")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		categoryIDs, err := importCategories(tx, snap.Categories)
		if err != nil {
			return err
		}
		instrumentIDs, err := importInstruments(tx, snap.Instruments)
		if err != nil {
			return err
		}
		artistIDs, err := importArtists(tx, snap.Artists)
		if err != nil {
			return err
		}

		for _, item := range snap.LibraryItems {
			if item.ID == "" || item.Name == "" {
				return fmt.Errorf("library item %q is missing an id or name", item.ID)
			}
			item.CategoryID = remap(categoryIDs, item.CategoryID)
			item.ArtistID = remap(artistIDs, item.ArtistID)
			if err := upsert(tx, &item); err != nil {
				return fmt.Errorf("import library item %s: %w", item.ID, err)
			}
		}

		for _, session := range snap.Sessions {
			if session.ID == "" || session.Date == "" {
				return fmt.Errorf("session %q is missing an id or date", session.ID)
			}
			session.InstrumentID = remap(instrumentIDs, session.InstrumentID)
			session.Items = nil
			if err := upsert(tx, &session); err != nil {
				return fmt.Errorf("import session %s: %w", session.ID, err)
			}
		}

		for _, item := range snap.SessionItems {
			if item.ID == "" || item.SessionID == "" || item.Name == "" {
				return fmt.Errorf("session item %q is missing an id, session or name", item.ID)
			}
			item.CategoryID = remap(categoryIDs, item.CategoryID)
			if err := upsert(tx, &item); err != nil {
				return fmt.Errorf("import session item %s: %w", item.ID, err)
			}
		}

		for _, setting := range snap.Settings {
			if setting.Key == "" {
				return fmt.Errorf("setting with empty key")
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&entities.Setting{Key: setting.Key, Value: setting.Value}).Error; err != nil {
				return fmt.Errorf("import setting %s: %w", setting.Key, err)
			}
		}

		if len(snap.Users) > 0 {
			user := snap.Users[0]
			if user.ID == "" {
				return fmt.Errorf("user record is missing an id")
			}
			user.DefaultInstrumentID = remap(instrumentIDs, user.DefaultInstrumentID)
			if err := upsert(tx, &user); err != nil {
				return fmt.Errorf("import user %s: %w", user.ID, err)
			}
		}

		return nil
	})
}

// ClearAll is the factory reset. The theme and the user's profile fields
// survive; everything else is wiped and the default categories and
// instruments are re-seeded. The whole sequence is one transaction, so a
// crash can never lose the preserved values.
func (r *Reconciler) ClearAll() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var preservedUser entities.User
		hasUser := tx.First(&preservedUser).Error == nil

		var preservedTheme string
		hasTheme := false
		var themeSetting entities.Setting
		if err := tx.Where("key = ?", entities.SettingKeyTheme).First(&themeSetting).Error; err == nil {
			preservedTheme = themeSetting.Value
			hasTheme = true
		}

		wipe := []any{
			&entities.SessionItem{},
			&entities.Session{},
			&entities.LibraryItem{},
			&entities.Artist{},
			&entities.Category{},
			&entities.Instrument{},
			&entities.Setting{},
			&entities.User{},
		}
		for _, model := range wipe {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("clear: %w", err)
			}
		}

		if err := database.SeedDefaults(tx); err != nil {
			return fmt.Errorf("reseed: %w", err)
		}

		if hasUser {
			updates := map[string]any{
				"name":  preservedUser.Name,
				"email": preservedUser.Email,
			}
			if preservedUser.DefaultInstrumentID != nil {
				updates["default_instrument_id"] = *preservedUser.DefaultInstrumentID
			}
			if err := tx.Model(&entities.User{}).Where("1 = 1").Updates(updates).Error; err != nil {
				return fmt.Errorf("restore profile: %w", err)
			}
		}

		if hasTheme {
			if err := tx.Create(&entities.Setting{Key: entities.SettingKeyTheme, Value: preservedTheme}).Error; err != nil {
				return fmt.Errorf("restore theme: %w", err)
			}
		}

		return nil
	})
}

func importCategories(tx *gorm.DB, categories []entities.Category) (map[string]string, error) {
	remapped := make(map[string]string)
	for _, category := range categories {
		if category.ID == "" || category.Name == "" {
			return nil, fmt.Errorf("category %q is missing an id or name", category.ID)
		}

		var existing entities.Category
		err := tx.Where("LOWER(name) = ?", strings.ToLower(category.Name)).First(&existing).Error
		if err == nil && existing.ID != category.ID {
			remapped[category.ID] = existing.ID
			category.ID = existing.ID
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("import category %s: %w", category.Name, err)
		}

		if err := upsert(tx, &category); err != nil {
			return nil, fmt.Errorf("import category %s: %w", category.Name, err)
		}
	}
	return remapped, nil
}

func importInstruments(tx *gorm.DB, instruments []entities.Instrument) (map[string]string, error) {
	remapped := make(map[string]string)
	for _, instrument := range instruments {
		if instrument.ID == "" || instrument.Name == "" {
			return nil, fmt.Errorf("instrument %q is missing an id or name", instrument.ID)
		}

		var existing entities.Instrument
		err := tx.Where("LOWER(name) = ?", strings.ToLower(instrument.Name)).First(&existing).Error
		if err == nil && existing.ID != instrument.ID {
			remapped[instrument.ID] = existing.ID
			instrument.ID = existing.ID
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("import instrument %s: %w", instrument.Name, err)
		}

		if err := upsert(tx, &instrument); err != nil {
			return nil, fmt.Errorf("import instrument %s: %w", instrument.Name, err)
		}
	}
	return remapped, nil
}

func importArtists(tx *gorm.DB, artists []entities.Artist) (map[string]string, error) {
	remapped := make(map[string]string)
	for _, artist := range artists {
		if artist.ID == "" || artist.Name == "" {
			return nil, fmt.Errorf("artist %q is missing an id or name", artist.ID)
		}

		var existing entities.Artist
		err := tx.Where("LOWER(name) = ?", strings.ToLower(artist.Name)).First(&existing).Error
		if err == nil && existing.ID != artist.ID {
			remapped[artist.ID] = existing.ID
			artist.ID = existing.ID
		} else if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("import artist %s: %w", artist.Name, err)
		}

		if err := upsert(tx, &artist); err != nil {
			return nil, fmt.Errorf("import artist %s: %w", artist.Name, err)
		}
	}
	return remapped, nil
}

// upsert inserts or fully overwrites a row by primary key.
func upsert(tx *gorm.DB, record any) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(record).Error
}

// remap swaps an incoming reference id for the deduplicated one, when the
// import resolved it to an existing row.
func remap(ids map[string]string, id *string) *string {
	if id == nil {
		return nil
	}
	if resolved, ok := ids[*id]; ok {
		return &resolved
	}
	return id
}
