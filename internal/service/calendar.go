package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/noor/internal/cache"
	"github.com/mmcdole/noor/internal/domain"
)

// CalendarService serves today's Hijri date
type CalendarService struct {
	repo   domain.CalendarRepository
	cache  *cache.Cache
	now    domain.Clock
	logger *slog.Logger
}

// NewCalendarService creates a new calendar service. A nil clock uses time.Now.
func NewCalendarService(repo domain.CalendarRepository, c *cache.Cache, now domain.Clock, logger *slog.Logger) *CalendarService {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &CalendarService{repo: repo, cache: c, now: now, logger: logger}
}

// Today returns the Hijri and Gregorian date for the local calendar day.
// The entry is reused until local midnight.
func (s *CalendarService) Today(ctx context.Context) (domain.HijriDate, error) {
	today := s.now()
	date, err := cache.ReadThrough(ctx, s.cache, cache.HijriDateKey(), func(ctx context.Context) (domain.HijriDate, error) {
		return s.repo.HijriDate(ctx, today)
	})
	if err != nil {
		s.logger.Error("failed to get hijri date", "error", err)
		return domain.HijriDate{}, err
	}
	return date, nil
}
