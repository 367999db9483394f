package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prefs"
)

// LocationService resolves and persists the prayer location
type LocationService struct {
	locator  domain.Locator
	geocoder domain.Geocoder
	prefs    *prefs.Store
	logger   *slog.Logger
}

// NewLocationService creates a new location service
func NewLocationService(locator domain.Locator, geocoder domain.Geocoder, p *prefs.Store, logger *slog.Logger) *LocationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationService{locator: locator, geocoder: geocoder, prefs: p, logger: logger}
}

// Saved returns the persisted location without touching the network
func (s *LocationService) Saved() (domain.Location, bool) {
	return s.prefs.PrayerLocation()
}

// Current returns the saved location, or detects, names and saves a new one.
// Detection failure is reported as domain.ErrLocationUnavailable.
func (s *LocationService) Current(ctx context.Context) (domain.Location, error) {
	if loc, ok := s.prefs.PrayerLocation(); ok {
		return loc, nil
	}
	return s.Detect(ctx)
}

// Detect ignores the saved location and asks the locator again
func (s *LocationService) Detect(ctx context.Context) (domain.Location, error) {
	if s.locator == nil {
		return domain.Location{}, domain.ErrLocationUnavailable
	}

	loc, err := s.locator.Locate(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.Location{}, err
		}
		s.logger.Warn("location detection failed", "error", err)
		if !errors.Is(err, domain.ErrLocationUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
		}
		return domain.Location{}, err
	}

	return s.Update(ctx, loc)
}

// Update overwrites the saved location wholesale, filling in the city name
// when it is missing.
func (s *LocationService) Update(ctx context.Context, loc domain.Location) (domain.Location, error) {
	if !loc.Valid() {
		return domain.Location{}, fmt.Errorf("%w: coordinates out of range", domain.ErrLocationUnavailable)
	}
	if loc.City == "" {
		loc.City = s.cityName(ctx, loc)
	}
	if err := s.prefs.SetPrayerLocation(loc); err != nil {
		s.logger.Error("failed to save location", "error", err)
		return loc, err
	}
	s.logger.Info("saved prayer location", "city", loc.City, "latitude", loc.Latitude, "longitude", loc.Longitude)
	return loc, nil
}

// cityName never fails; an unreachable geocoder leaves the city empty
func (s *LocationService) cityName(ctx context.Context, loc domain.Location) string {
	if s.geocoder == nil {
		return ""
	}
	city, err := s.geocoder.CityName(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		s.logger.Warn("reverse geocoding failed", "error", err)
		return ""
	}
	return city
}
