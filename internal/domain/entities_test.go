package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{0, 0, true},
		{-90, 180, true},
		{24.4661, 39.6142, true},
		{90.1, 0, false},
		{0, -180.5, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v,%v", tt.lat, tt.lon), func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinates(tt.lat, tt.lon))
			assert.Equal(t, tt.want, Location{Latitude: tt.lat, Longitude: tt.lon}.Valid())
		})
	}
}

func TestLocation_DisplayName(t *testing.T) {
	assert.Equal(t, "Medina", Location{Latitude: 24.4, Longitude: 39.6, City: "Medina"}.DisplayName())
	assert.Equal(t, "24.4661, 39.6142", Location{Latitude: 24.4661, Longitude: 39.6142}.DisplayName())
}

func TestCalendarDate_String(t *testing.T) {
	d := CalendarDate{Day: "04", Month: MonthName{En: "Jumādá al-ūlá"}, Year: "1448"}
	assert.Equal(t, "04 Jumādá al-ūlá 1448", d.String())
	assert.Empty(t, CalendarDate{}.String())
}

func TestFindHadithCollection(t *testing.T) {
	c, ok := FindHadithCollection("muslim")
	assert.True(t, ok)
	assert.Equal(t, "صحيح مسلم", c.Name)

	_, ok = FindHadithCollection("unknown")
	assert.False(t, ok)
	assert.Len(t, DefaultHadithCollections, 8)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("fetch: %w", ErrOffline)))
	assert.True(t, IsRetryable(ErrInvalidResponse))
	assert.False(t, IsRetryable(ErrLocationUnavailable))
	assert.False(t, IsRetryable(nil))
}
