package domain

import (
	"fmt"
	"time"
)

// Surah is one of the 114 chapters of the Quran
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`                   // Arabic name
	EnglishName            string `json:"englishName"`            // Transliterated name
	EnglishNameTranslation string `json:"englishNameTranslation"` // Translated meaning
	RevelationType         string `json:"revelationType"`         // "Meccan" or "Medinan"
	NumberOfAyahs          int    `json:"numberOfAyahs"`
}

// DisplayTitle returns "{number}. {englishName}"
func (s Surah) DisplayTitle() string {
	return fmt.Sprintf("%d. %s", s.Number, s.EnglishName)
}

// Description returns secondary info for list rendering
func (s Surah) Description() string {
	return fmt.Sprintf("%s · %s · %d ayahs", s.EnglishNameTranslation, s.RevelationType, s.NumberOfAyahs)
}

// Ayah is a single verse merged from the text, translation and audio editions
type Ayah struct {
	Number        int    `json:"number"`        // Global ayah number (1..6236)
	NumberInSurah int    `json:"numberInSurah"` // Position within the surah
	Text          string `json:"text"`
	Translation   string `json:"translation"`
	Audio         string `json:"audio,omitempty"` // Recitation URL, empty if the edition had none
	Page          int    `json:"page"`
}

// Reciter selects whose recitation is used for ayah audio
type Reciter struct {
	ID    string `json:"id"` // alquran.cloud audio edition identifier
	Name  string `json:"name"`
	Style string `json:"style,omitempty"`
}

// DefaultReciters is the built-in reciter list; the first entry is the default
var DefaultReciters = []Reciter{
	{ID: "ar.alafasy", Name: "Mishary Rashid Alafasy", Style: "Murattal"},
	{ID: "ar.abdulbasitmurattal", Name: "Abdul Basit Abdul Samad", Style: "Murattal"},
	{ID: "ar.abdurrahmaansudais", Name: "Abdur-Rahman As-Sudais", Style: "Murattal"},
	{ID: "ar.hudhaify", Name: "Ali Al-Hudhaify", Style: "Murattal"},
	{ID: "ar.minshawi", Name: "Mohamed Siddiq Al-Minshawi", Style: "Murattal"},
	{ID: "ar.ahmedajamy", Name: "Ahmed ibn Ali al-Ajamy", Style: "Murattal"},
}

// MonthName carries a month name in Arabic and English
type MonthName struct {
	Number int    `json:"number,omitempty"`
	Ar     string `json:"ar"`
	En     string `json:"en"`
}

// CalendarDate is a day in either the Hijri or the Gregorian calendar
type CalendarDate struct {
	Day   string    `json:"day"`
	Month MonthName `json:"month"`
	Year  string    `json:"year"`
}

// String renders "14 Rabīʿ al-thānī 1448"
func (d CalendarDate) String() string {
	if d.Day == "" {
		return ""
	}
	return fmt.Sprintf("%s %s %s", d.Day, d.Month.En, d.Year)
}

// HijriDate pairs the Hijri date with its Gregorian equivalent
type HijriDate struct {
	Hijri     CalendarDate `json:"hijri"`
	Gregorian CalendarDate `json:"gregorian"`
}

// PrayerTimings maps prayer names (and informational markers like Sunrise,
// Sunset, Midnight) to "HH:MM" strings for one date and coordinate pair.
type PrayerTimings struct {
	Date  string            `json:"date"` // YYYY-MM-DD
	Times map[string]string `json:"times"`
}

// NextPrayer is derived from PrayerTimings and the current time; never stored
type NextPrayer struct {
	Name      string
	At        time.Time
	Formatted string // "03:30 PM"
}

// Location is the persisted prayer location
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city,omitempty"`
}

// DisplayName returns the city, or the coordinates when the city is unknown
func (l Location) DisplayName() string {
	if l.City != "" {
		return l.City
	}
	return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
}

// Valid reports whether the coordinates are on the globe
func (l Location) Valid() bool {
	return ValidCoordinates(l.Latitude, l.Longitude)
}

// ValidCoordinates reports whether lat/lon are within range
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Hadith is a single narration within a collection
type Hadith struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Text        string `json:"text"` // Arabic text
	Translation string `json:"translation,omitempty"`
	Chapter     string `json:"chapter,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Grade       string `json:"grade,omitempty"`
}

// HadithCollection is a named book of hadith
type HadithCollection struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"hadiths_count"`
}

// DefaultHadithCollections lists the collections offered in the reader
var DefaultHadithCollections = []HadithCollection{
	{ID: "bukhari", Name: "صحيح البخاري", Count: 7563},
	{ID: "muslim", Name: "صحيح مسلم", Count: 5362},
	{ID: "abu-dawud", Name: "سنن أبي داود", Count: 4590},
	{ID: "tirmidhi", Name: "جامع الترمذي", Count: 3891},
	{ID: "nasai", Name: "سنن النسائي", Count: 5662},
	{ID: "ibn-majah", Name: "سنن ابن ماجه", Count: 4332},
	{ID: "malik", Name: "موطأ مالك", Count: 1594},
	{ID: "riyad", Name: "رياض الصالحين", Count: 1896},
}

// FindHadithCollection looks up a built-in collection by id
func FindHadithCollection(id string) (HadithCollection, bool) {
	for _, c := range DefaultHadithCollections {
		if c.ID == id {
			return c, true
		}
	}
	return HadithCollection{}, false
}
