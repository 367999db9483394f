package cache

import (
	"fmt"
	"time"
)

// Cache keys. Each data category owns a disjoint key namespace.
const (
	keySurahs         = "surahs"
	keyHijriDate      = "hijri-date"
	prefixAyahs       = "ayahs-"
	prefixPrayerTimes = "prayer-times-"
	prefixHadiths     = "hadiths-"
)

// SurahsKey is the key for the surah list
func SurahsKey() string {
	return keySurahs
}

// AyahsKey is the key for one surah's merged ayah bundle (ayahs-{surah}-{reciter})
func AyahsKey(surah int, reciterID string) string {
	return fmt.Sprintf("%s%d-%s", prefixAyahs, surah, reciterID)
}

// HijriDateKey is the key for today's Hijri date
func HijriDateKey() string {
	return keyHijriDate
}

// PrayerTimesKey is the key for one day's timings at a location.
// Coordinates are rounded to two decimals (about 1.1km), so nearby
// requests share an entry.
func PrayerTimesKey(date time.Time, latitude, longitude float64) string {
	return fmt.Sprintf("%s%s-%.2f-%.2f", prefixPrayerTimes, date.Format(time.DateOnly), latitude, longitude)
}

// HadithsKey is the key for a collection page (hadiths-{collection}-{limit})
func HadithsKey(collection string, limit int) string {
	return fmt.Sprintf("%s%s-%d", prefixHadiths, collection, limit)
}
