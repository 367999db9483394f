package prayer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var medina = time.FixedZone("AST", 3*60*60)

func day(hour, minute int) time.Time {
	return time.Date(2026, 10, 16, hour, minute, 0, 0, medina)
}

func sampleTimings() domain.PrayerTimings {
	return domain.PrayerTimings{
		Date: "2026-10-16",
		Times: map[string]string{
			"Fajr":     "05:00",
			"Sunrise":  "06:20",
			"Dhuhr":    "12:15",
			"Asr":      "15:30",
			"Maghrib":  "18:00",
			"Isha":     "19:30",
			"Midnight": "00:10",
		},
	}
}

func quietResolver() *Resolver {
	return NewResolver(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{"05:00", 5, 0, false},
		{"19:30", 19, 30, false},
		{"05:12 (+03)", 5, 12, false},
		{" 4:07 ", 4, 7, false},
		{"", 0, 0, true},
		{"noon", 0, 0, true},
		{"25:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"ab:cd", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			h, m, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.m, m)
		})
	}
}

func TestNext(t *testing.T) {
	r := quietResolver()

	t.Run("afternoon selects Asr", func(t *testing.T) {
		np, ok := r.Next(sampleTimings(), day(13, 0))
		require.True(t, ok)
		assert.Equal(t, Asr, np.Name)
		assert.Equal(t, day(15, 30), np.At)
		assert.Equal(t, "03:30 PM", np.Formatted)
	})

	t.Run("before dawn selects Fajr today", func(t *testing.T) {
		np, ok := r.Next(sampleTimings(), day(3, 0))
		require.True(t, ok)
		assert.Equal(t, Fajr, np.Name)
		assert.Equal(t, day(5, 0), np.At)
	})

	t.Run("strictly after now", func(t *testing.T) {
		np, ok := r.Next(sampleTimings(), day(12, 15))
		require.True(t, ok)
		assert.Equal(t, Asr, np.Name)
	})

	t.Run("sunrise is never next", func(t *testing.T) {
		np, ok := r.Next(sampleTimings(), day(5, 30))
		require.True(t, ok)
		assert.Equal(t, Dhuhr, np.Name)
	})

	t.Run("after Isha wraps to tomorrow's Fajr", func(t *testing.T) {
		now := day(23, 0)
		np, ok := r.Next(sampleTimings(), now)
		require.True(t, ok)
		assert.Equal(t, Fajr, np.Name)
		assert.Equal(t, "05:00 AM", np.Formatted)
		assert.Equal(t, time.Date(2026, 10, 17, 5, 0, 0, 0, medina), np.At)
		assert.True(t, np.At.After(now))
		assert.Equal(t, "6h 0m", Remaining(np, now))
	})

	t.Run("unparsable entries are skipped", func(t *testing.T) {
		timings := sampleTimings()
		timings.Times["Asr"] = "garbage"
		np, ok := r.Next(timings, day(13, 0))
		require.True(t, ok)
		assert.Equal(t, Maghrib, np.Name)
	})

	t.Run("wraparound uses first parsable prayer", func(t *testing.T) {
		timings := sampleTimings()
		delete(timings.Times, "Fajr")
		np, ok := r.Next(timings, day(23, 0))
		require.True(t, ok)
		assert.Equal(t, Dhuhr, np.Name)
	})

	t.Run("no usable timings", func(t *testing.T) {
		_, ok := r.Next(domain.PrayerTimings{}, day(13, 0))
		assert.False(t, ok)

		_, ok = r.Next(domain.PrayerTimings{Times: map[string]string{"Fajr": "x"}}, day(13, 0))
		assert.False(t, ok)
	})
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(sampleTimings()))

	bad := sampleTimings()
	delete(bad.Times, Isha)
	bad.Times[Asr] = "3:30pm"
	bad.Times[Sunrise] = "garbage"

	err := Check(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Isha: missing")
	assert.Contains(t, err.Error(), "Asr:")
	assert.NotContains(t, err.Error(), "Sunrise")
}

func TestNext_SkipsBadEntriesQuietly(t *testing.T) {
	var buf bytes.Buffer
	r := NewResolver(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	timings := sampleTimings()
	delete(timings.Times, Asr)
	timings.Times[Maghrib] = "??"

	for i := 0; i < 3; i++ {
		np, ok := r.Next(timings, day(13, 0))
		require.True(t, ok)
		assert.Equal(t, Isha, np.Name)
		r.Schedule(timings, day(13, 0))
	}
	assert.Empty(t, buf.String())
}

func TestNext_ZeroResolver(t *testing.T) {
	np, ok := Next(sampleTimings(), day(13, 0))
	require.True(t, ok)
	assert.Equal(t, Asr, np.Name)
}

func TestRemaining(t *testing.T) {
	next := domain.NextPrayer{Name: Asr, At: day(15, 30)}

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"hours and minutes", day(13, 45), "1h 45m"},
		{"whole hours", day(13, 30), "2h 0m"},
		{"minutes only", day(15, 29), "1m"},
		{"partial minute floors", day(15, 29).Add(30 * time.Second), "0m"},
		{"exactly due", day(15, 30), "0m"},
		{"already passed", day(15, 31), "now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(next, tt.now))
		})
	}
}

func TestSchedule(t *testing.T) {
	r := quietResolver()
	timings := sampleTimings()
	timings.Times["Isha"] = "??"

	rows := r.Schedule(timings, day(13, 0))
	require.Len(t, rows, len(DisplayPrayers))

	byName := make(map[string]Row)
	for i, row := range rows {
		assert.Equal(t, DisplayPrayers[i], row.Name)
		byName[row.Name] = row
	}

	assert.True(t, byName[Fajr].Passed)
	assert.True(t, byName[Sunrise].Passed)
	assert.True(t, byName[Dhuhr].Passed)
	assert.False(t, byName[Asr].Passed)
	assert.True(t, byName[Asr].Next)
	assert.False(t, byName[Maghrib].Next)

	assert.False(t, byName[Isha].Valid)
	assert.Equal(t, "--:--", byName[Isha].Formatted)
}
