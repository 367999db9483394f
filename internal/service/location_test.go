package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationService_CurrentDetectsAndSaves(t *testing.T) {
	env := newTestEnv(t)
	locator := &fakeLocator{loc: domain.Location{Latitude: 24.4661, Longitude: 39.6142}}
	svc := NewLocationService(locator, fakeGeocoder{city: "Medina"}, env.prefs, quietLogger)
	ctx := context.Background()

	loc, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Medina", loc.City)

	saved, ok := svc.Saved()
	require.True(t, ok)
	assert.Equal(t, loc, saved)

	_, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), locator.calls.Load(), "saved location short-circuits detection")
}

func TestLocationService_LocatorCityIsKept(t *testing.T) {
	env := newTestEnv(t)
	locator := &fakeLocator{loc: domain.Location{Latitude: 21.42, Longitude: 39.82, City: "Mecca"}}
	svc := NewLocationService(locator, fakeGeocoder{city: "ignored"}, env.prefs, quietLogger)

	loc, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Mecca", loc.City)
}

func TestLocationService_DetectionFailure(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		locator domain.Locator
	}{
		{"denied", &fakeLocator{err: domain.ErrLocationUnavailable}},
		{"other error", &fakeLocator{err: errors.New("no signal")}},
		{"no locator", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLocationService(tt.locator, fakeGeocoder{}, env.prefs, quietLogger)
			_, err := svc.Current(context.Background())
			require.ErrorIs(t, err, domain.ErrLocationUnavailable)
			assert.False(t, domain.IsRetryable(err))
		})
	}
}

func TestLocationService_UpdateIsWholesale(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLocationService(nil, fakeGeocoder{err: domain.ErrOffline}, env.prefs, quietLogger)
	ctx := context.Background()

	_, err := svc.Update(ctx, domain.Location{Latitude: 1, Longitude: 2, City: "Old"})
	require.NoError(t, err)

	loc, err := svc.Update(ctx, domain.Location{Latitude: 3, Longitude: 4})
	require.NoError(t, err, "geocoding failure leaves the city empty")
	assert.Empty(t, loc.City)

	saved, ok := svc.Saved()
	require.True(t, ok)
	assert.Equal(t, domain.Location{Latitude: 3, Longitude: 4}, saved)

	_, err = svc.Update(ctx, domain.Location{Latitude: 120, Longitude: 4})
	assert.ErrorIs(t, err, domain.ErrLocationUnavailable)
}

func TestLocationService_DetectReplacesSaved(t *testing.T) {
	env := newTestEnv(t)
	locator := &fakeLocator{loc: domain.Location{Latitude: 30.04, Longitude: 31.23, City: "Cairo"}}
	svc := NewLocationService(locator, fakeGeocoder{}, env.prefs, quietLogger)
	ctx := context.Background()

	_, err := svc.Update(ctx, domain.Location{Latitude: 1, Longitude: 2, City: "Old"})
	require.NoError(t, err)

	loc, err := svc.Detect(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cairo", loc.City)

	saved, _ := svc.Saved()
	assert.Equal(t, "Cairo", saved.City)
}
