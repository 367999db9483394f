package domain

import (
	"context"
	"time"
)

// QuranRepository provides access to surah metadata and per-edition ayahs
type QuranRepository interface {
	// Surahs returns the ordered list of all surahs
	Surahs(ctx context.Context) ([]Surah, error)

	// Edition returns the ayahs of one surah in a single edition
	// (text, translation or audio recitation). Only the fields that
	// edition carries are populated.
	Edition(ctx context.Context, surah int, edition string) ([]EditionAyah, error)
}

// EditionAyah is one ayah as returned by a single edition
type EditionAyah struct {
	Number        int
	NumberInSurah int
	Text          string
	Audio         string
	Page          int
}

// HadithRepository provides hadith records per collection
type HadithRepository interface {
	Hadiths(ctx context.Context, collection string, limit int) ([]Hadith, error)
}

// CalendarRepository converts Gregorian dates to Hijri
type CalendarRepository interface {
	HijriDate(ctx context.Context, date time.Time) (HijriDate, error)
}

// PrayerRepository returns timings of day for a date and coordinate
type PrayerRepository interface {
	Timings(ctx context.Context, date time.Time, latitude, longitude float64, method int) (PrayerTimings, error)
}

// Geocoder resolves coordinates to a human readable city name
type Geocoder interface {
	CityName(ctx context.Context, latitude, longitude float64) (string, error)
}

// Locator determines the device's approximate coordinates.
// Implementations return ErrLocationUnavailable when they cannot.
type Locator interface {
	Locate(ctx context.Context) (Location, error)
}
