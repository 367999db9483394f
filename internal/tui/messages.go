package tui

import (
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/service"
)

// Message types for the TUI

// ErrMsg represents a failed load. Tab says which view shows it.
type ErrMsg struct {
	Err     error
	Context string
	Tab     Tab
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap exposes the cause to errors.Is
func (e ErrMsg) Unwrap() error {
	return e.Err
}

// HijriLoadedMsg carries today's Hijri and Gregorian date
type HijriLoadedMsg struct {
	Date domain.HijriDate
}

// LocationResolvedMsg carries the prayer location
type LocationResolvedMsg struct {
	Location domain.Location
}

// LocationErrMsg reports that no location could be determined. It is kept
// apart from ErrMsg because the remedy is setting a location, not retrying.
type LocationErrMsg struct {
	Err error
}

// TimingsLoadedMsg carries the prayer timings for a location and day
type TimingsLoadedMsg struct {
	Timings  domain.PrayerTimings
	Location domain.Location
}

// SurahsLoadedMsg carries the surah list
type SurahsLoadedMsg struct {
	Surahs []domain.Surah
}

// AyahsLoadedMsg carries the merged ayahs of one surah
type AyahsLoadedMsg struct {
	Surah   domain.Surah
	Reciter domain.Reciter
	Ayahs   []domain.Ayah
}

// HadithsLoadedMsg carries a page of hadiths (possibly the fallback samples)
type HadithsLoadedMsg struct {
	Result service.HadithResult
}

// ReciterSelectedMsg signals a stored reciter choice
type ReciterSelectedMsg struct {
	Reciter domain.Reciter
}

// NotificationToggledMsg signals a stored reminder toggle
type NotificationToggledMsg struct {
	Prayer  string
	Enabled bool
}

// RecitationStartedMsg signals that the player accepted a surah's recitation
type RecitationStartedMsg struct {
	Recitation service.Recitation
}

// ClockTickMsg is sent once per second by the scheduler
type ClockTickMsg struct {
	Now time.Time
}

// DayRolloverMsg is sent at local midnight by the scheduler
type DayRolloverMsg struct {
	Now time.Time
}

// SpinnerTickMsg animates loading indicators
type SpinnerTickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
