package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/noor/internal/cache"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prayer"
	"github.com/mmcdole/noor/internal/prefs"
)

// PrayerService serves prayer timings and derives the next prayer
type PrayerService struct {
	repo     domain.PrayerRepository
	cache    *cache.Cache
	prefs    *prefs.Store
	resolver *prayer.Resolver
	method   int
	now      domain.Clock
	logger   *slog.Logger
}

// NewPrayerService creates a new prayer service. A nil clock uses time.Now.
func NewPrayerService(repo domain.PrayerRepository, c *cache.Cache, p *prefs.Store, method int, now domain.Clock, logger *slog.Logger) *PrayerService {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &PrayerService{
		repo:     repo,
		cache:    c,
		prefs:    p,
		resolver: prayer.NewResolver(logger),
		method:   method,
		now:      now,
		logger:   logger,
	}
}

// Now returns the service clock's current time
func (s *PrayerService) Now() time.Time {
	return s.now()
}

// Timings returns the timings for date at loc
func (s *PrayerService) Timings(ctx context.Context, loc domain.Location, date time.Time) (domain.PrayerTimings, error) {
	key := cache.PrayerTimesKey(date, loc.Latitude, loc.Longitude)
	timings, err := cache.ReadThrough(ctx, s.cache, key, func(ctx context.Context) (domain.PrayerTimings, error) {
		return s.repo.Timings(ctx, date, loc.Latitude, loc.Longitude, s.method)
	})
	if err != nil {
		s.logger.Error("failed to get prayer times", "date", date.Format(time.DateOnly), "error", err)
		return domain.PrayerTimings{}, err
	}
	if err := prayer.Check(timings); err != nil {
		s.logger.Warn("prayer timings incomplete", "date", timings.Date, "error", err)
	}
	return timings, nil
}

// Today returns today's timings at loc
func (s *PrayerService) Today(ctx context.Context, loc domain.Location) (domain.PrayerTimings, error) {
	return s.Timings(ctx, loc, s.now())
}

// Next resolves the next prayer at the current time
func (s *PrayerService) Next(timings domain.PrayerTimings) (domain.NextPrayer, bool) {
	return s.NextAt(timings, s.now())
}

// NextAt resolves the next prayer at now
func (s *PrayerService) NextAt(timings domain.PrayerTimings, now time.Time) (domain.NextPrayer, bool) {
	return s.resolver.Next(timings, now)
}

// Remaining formats the time until next at the current time
func (s *PrayerService) Remaining(next domain.NextPrayer) string {
	return prayer.Remaining(next, s.now())
}

// Schedule returns the table rows at the current time
func (s *PrayerService) Schedule(timings domain.PrayerTimings) []prayer.Row {
	return s.ScheduleAt(timings, s.now())
}

// ScheduleAt returns the table rows at now
func (s *PrayerService) ScheduleAt(timings domain.PrayerTimings, now time.Time) []prayer.Row {
	return s.resolver.Schedule(timings, now)
}

// Notifications returns the reminder toggles
func (s *PrayerService) Notifications() prefs.Notifications {
	return s.prefs.PrayerNotifications()
}

// ToggleNotification flips the reminder for name and returns the new state
func (s *PrayerService) ToggleNotification(name string) (bool, error) {
	n := s.prefs.PrayerNotifications()
	n[name] = !n[name]
	if err := s.prefs.SetPrayerNotifications(n); err != nil {
		s.logger.Error("failed to save notification toggles", "error", err)
		return !n[name], err
	}
	return n[name], nil
}
