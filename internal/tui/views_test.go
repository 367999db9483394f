package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prayer"
	"github.com/stretchr/testify/assert"
)

func TestCountdownLabel(t *testing.T) {
	at := time.Date(2026, 10, 16, 15, 30, 0, 0, time.UTC)
	next := domain.NextPrayer{Name: prayer.Asr, At: at}

	assert.Equal(t, "in 1h 45m", CountdownLabel(next, at.Add(-105*time.Minute)))
	assert.Equal(t, "in 5m", CountdownLabel(next, at.Add(-5*time.Minute)))
	assert.Equal(t, "now", CountdownLabel(next, at.Add(time.Second)))
}

func TestFormatAyahs(t *testing.T) {
	out := FormatAyahs([]domain.Ayah{
		{NumberInSurah: 1, Text: "بِسْمِ اللَّهِ", Translation: "In the name of Allah", Audio: "https://cdn.example.org/1.mp3"},
		{NumberInSurah: 2, Text: "الْحَمْدُ لِلَّهِ", Translation: "All praise is due to Allah"},
	}, 80)

	assert.Contains(t, out, "﴿1﴾")
	assert.Contains(t, out, "﴿2﴾")
	assert.Contains(t, out, "In the name of Allah")
	assert.Contains(t, out, "All praise is due to Allah")
	assert.Contains(t, out, "https://cdn.example.org/1.mp3")
	assert.Empty(t, FormatAyahs(nil, 80))
}

func TestFormatHadith(t *testing.T) {
	out := FormatHadith(domain.Hadith{
		Text:        "إنما الأعمال بالنيات",
		Translation: "Actions are judged by intentions",
		Chapter:     "Revelation",
		Reference:   "Bukhari 1",
		Grade:       "Sahih",
	}, 80)

	assert.Contains(t, out, "Actions are judged by intentions")
	assert.Contains(t, out, "Revelation · Bukhari 1 · Sahih")
}

func TestErrorHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"offline", fmt.Errorf("get: %w", domain.ErrOffline), "Could not reach the content service. Check your connection."},
		{"bad status", domain.ErrUnexpectedStatus, "The content service returned an unexpected response."},
		{"bad payload", domain.ErrInvalidResponse, "The content service returned an unexpected response."},
		{"not found", domain.ErrNotFound, "Nothing was found."},
		{"other", errors.New("boom"), "Something went wrong: boom"},
		{"with context", ErrMsg{Err: domain.ErrOffline, Context: "loading surahs"}, "Could not reach the content service while loading surahs. Check your connection."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorHint(tt.err))
		})
	}
}

func TestRenderPrayerTable(t *testing.T) {
	now := time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC)
	rows := prayer.NewResolver(quietLogger).Schedule(testTimings, now)
	notifications := map[string]bool{prayer.Fajr: true, prayer.Asr: false}

	out := RenderPrayerTable(rows, notifications, prayer.Asr)

	assert.Contains(t, out, "Sunrise")
	assert.Contains(t, out, "06:20 AM")
	assert.Contains(t, out, "● reminder on")
	assert.Contains(t, out, "○ reminder off")
	assert.Contains(t, out, "› ")

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Sunrise") {
			assert.NotContains(t, line, "reminder")
		}
	}
}

func TestRenderLocationNotice(t *testing.T) {
	out := RenderLocationNotice(domain.ErrLocationUnavailable, 120)
	assert.Contains(t, out, "Your location could not be determined.")
	assert.Contains(t, out, "noor location set")
	assert.NotContains(t, out, "press r to retry")
}

func TestRenderTabBar(t *testing.T) {
	out := RenderTabBar(TabPrayer, 100)
	for i, tab := range Tabs {
		assert.Contains(t, out, fmt.Sprintf("%d %s", i+1, tab))
	}
	assert.Contains(t, out, "noor")
}
