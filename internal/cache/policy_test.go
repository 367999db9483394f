package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	day := time.Date(2026, 10, 16, 23, 30, 0, 0, time.FixedZone("AST", 3*60*60))

	assert.Equal(t, "surahs", SurahsKey())
	assert.Equal(t, "hijri-date", HijriDateKey())
	assert.Equal(t, "ayahs-18-ar.alafasy", AyahsKey(18, "ar.alafasy"))
	assert.Equal(t, "hadiths-bukhari-20", HadithsKey("bukhari", 20))
	assert.Equal(t, "prayer-times-2026-10-16-24.47-39.61", PrayerTimesKey(day, 24.4661, 39.6142))
}

func TestPrayerTimesKey_Rounding(t *testing.T) {
	day := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		PrayerTimesKey(day, 24.4661, 39.6142),
		PrayerTimesKey(day, 24.4669, 39.6149),
		"coordinates within the same two-decimal cell share a key")
	assert.NotEqual(t,
		PrayerTimesKey(day, 24.4661, 39.6142),
		PrayerTimesKey(day.AddDate(0, 0, 1), 24.4661, 39.6142))
	assert.Equal(t, "prayer-times-2026-10-16--33.87-151.21", PrayerTimesKey(day, -33.8688, 151.2093))
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		key  string
		want Category
	}{
		{"surahs", CategorySurahs},
		{"surahs-extra", CategoryOther},
		{"hijri-date", CategoryHijriDate},
		{"ayahs-1-ar.alafasy", CategoryAyahs},
		{"prayer-times-2026-10-16-1.00-2.00", CategoryPrayerTimes},
		{"hadiths-muslim-20", CategoryHadiths},
		{"something-else", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryOf(tt.key))
		})
	}
}

func TestRule_Fresh(t *testing.T) {
	stored := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	ttl := Rule{TTL: time.Hour}
	assert.True(t, ttl.Fresh(stored, stored.Add(59*time.Minute)))
	assert.False(t, ttl.Fresh(stored, stored.Add(time.Hour)))

	sameDay := Rule{SameDay: true}
	assert.True(t, sameDay.Fresh(stored, stored.Add(13*time.Hour)))
	assert.False(t, sameDay.Fresh(stored, stored.Add(14*time.Hour)))
	assert.False(t, sameDay.Fresh(stored, stored.AddDate(0, 1, 0)), "same day-of-month in another month is stale")
}

func TestPolicy_WithTTL(t *testing.T) {
	base := DefaultPolicy()

	p := base.WithTTL(CategoryHadiths, 6*time.Hour)
	assert.Equal(t, 6*time.Hour, p.Rule("hadiths-bukhari-20").TTL)
	assert.Equal(t, DefaultTTL, base.Rule("hadiths-bukhari-20").TTL, "original is unchanged")

	p = base.WithTTL(CategorySurahs, 0)
	assert.Equal(t, DefaultTTL, p.Rule("surahs").TTL)

	assert.True(t, base.Rule("hijri-date").SameDay)
	assert.Equal(t, DefaultTTL, Policy{}.Rule("anything").TTL)
}
