// Package prefs persists user preferences with one Go type per key.
package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmcdole/noor/internal/domain"
)

// Preference keys
const (
	KeyLastReadSurah       = "lastReadSurah"
	KeyLastHadithSelection = "lastSelectedHadithCollection"
	KeySelectedReciter     = "selectedReciter"
	KeyPrayerLocation      = "prayerLocation"
	KeyPrayerNotifications = "prayerNotifications"
	KeyTheme               = "theme"
)

// Notifications maps a prayer name to whether its reminder is enabled.
// The toggles are stored state only; nothing delivers them.
type Notifications map[string]bool

// DefaultNotifications enables all five daily prayers
func DefaultNotifications() Notifications {
	return Notifications{
		"Fajr":    true,
		"Dhuhr":   true,
		"Asr":     true,
		"Maghrib": true,
		"Isha":    true,
	}
}

// Store is the typed view over the prefs namespace
type Store struct {
	kv     domain.KVStore
	logger *slog.Logger
}

// New wraps kv
func New(kv domain.KVStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// LastReadSurah returns the last opened surah
func (s *Store) LastReadSurah() (domain.Surah, bool) {
	var surah domain.Surah
	ok := s.get(KeyLastReadSurah, &surah)
	return surah, ok && surah.Number > 0
}

// SetLastReadSurah records the last opened surah
func (s *Store) SetLastReadSurah(surah domain.Surah) error {
	return s.set(KeyLastReadSurah, surah)
}

// LastHadithCollection returns the id of the last selected collection
func (s *Store) LastHadithCollection() (string, bool) {
	var id string
	ok := s.get(KeyLastHadithSelection, &id)
	return id, ok && id != ""
}

// SetLastHadithCollection records the selected collection id
func (s *Store) SetLastHadithCollection(id string) error {
	return s.set(KeyLastHadithSelection, id)
}

// SelectedReciter returns the stored reciter
func (s *Store) SelectedReciter() (domain.Reciter, bool) {
	var r domain.Reciter
	ok := s.get(KeySelectedReciter, &r)
	return r, ok && r.ID != ""
}

// SetSelectedReciter stores the reciter
func (s *Store) SetSelectedReciter(r domain.Reciter) error {
	return s.set(KeySelectedReciter, r)
}

// PrayerLocation returns the saved location
func (s *Store) PrayerLocation() (domain.Location, bool) {
	var loc domain.Location
	if !s.get(KeyPrayerLocation, &loc) {
		return domain.Location{}, false
	}
	if !loc.Valid() {
		s.logger.Warn("ignoring saved location with invalid coordinates",
			"latitude", loc.Latitude, "longitude", loc.Longitude)
		return domain.Location{}, false
	}
	return loc, true
}

// SetPrayerLocation overwrites the saved location wholesale
func (s *Store) SetPrayerLocation(loc domain.Location) error {
	if !loc.Valid() {
		return fmt.Errorf("invalid coordinates %.4f, %.4f", loc.Latitude, loc.Longitude)
	}
	return s.set(KeyPrayerLocation, loc)
}

// PrayerNotifications returns the stored toggles merged over the defaults
func (s *Store) PrayerNotifications() Notifications {
	out := DefaultNotifications()
	var stored Notifications
	if s.get(KeyPrayerNotifications, &stored) {
		for name, on := range stored {
			out[name] = on
		}
	}
	return out
}

// SetPrayerNotifications stores the toggles
func (s *Store) SetPrayerNotifications(n Notifications) error {
	return s.set(KeyPrayerNotifications, n)
}

// Theme returns the stored theme name
func (s *Store) Theme() (string, bool) {
	var theme string
	ok := s.get(KeyTheme, &theme)
	return theme, ok && theme != ""
}

// SetTheme stores the theme name
func (s *Store) SetTheme(theme string) error {
	return s.set(KeyTheme, theme)
}

// Clear removes a single preference
func (s *Store) Clear(key string) error {
	return s.kv.Remove(key)
}

func (s *Store) get(key string, dest any) bool {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.logger.Error("failed to read preference", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("ignoring malformed preference", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
