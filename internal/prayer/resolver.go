// Package prayer resolves the next prayer from a day's timings.
//
// Everything here is a pure function of (timings, now); callers re-evaluate
// on every tick instead of caching the result.
package prayer

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/noor/internal/domain"
)

// Prayer names as returned by the timings API
const (
	Fajr    = "Fajr"
	Sunrise = "Sunrise"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// CanonicalPrayers are the five daily prayers considered for "next prayer", in order
var CanonicalPrayers = []string{Fajr, Dhuhr, Asr, Maghrib, Isha}

// DisplayPrayers adds the informational Sunrise marker for tabular views
var DisplayPrayers = []string{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// TimeFormat renders a prayer time for display
const TimeFormat = "03:04 PM"

// Resolver selects the next prayer. The zero value logs to slog.Default.
type Resolver struct {
	Logger *slog.Logger
}

// NewResolver creates a resolver that reports unparsable entries to logger
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{Logger: logger}
}

func (r *Resolver) logger() *slog.Logger {
	if r == nil || r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// ParseClock parses "HH:MM", ignoring any trailing annotation such as "05:12 (+03)"
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err = strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// At combines the calendar day of now with a "HH:MM" time in now's location
func At(clock string, now time.Time) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	y, mo, d := now.Date()
	return time.Date(y, mo, d, h, m, 0, 0, now.Location()), nil
}

// Check reports every canonical prayer that is missing or unparsable in
// timings. Next and Schedule skip those entries; callers that load timings
// report them once with Check instead of on every tick.
func Check(timings domain.PrayerTimings) error {
	var errs []error
	for _, name := range CanonicalPrayers {
		raw, ok := timings.Times[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: missing", name))
			continue
		}
		if _, _, err := ParseClock(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// Next returns the earliest canonical prayer strictly after now.
// When every prayer has passed, the first parsable prayer is returned stamped
// for tomorrow, using today's time as the estimate. It returns false when no
// entry could be parsed.
func (r *Resolver) Next(timings domain.PrayerTimings, now time.Time) (domain.NextPrayer, bool) {
	var first *domain.NextPrayer

	for _, name := range CanonicalPrayers {
		raw, ok := timings.Times[name]
		if !ok {
			r.logger().Debug("prayer time missing", "prayer", name, "date", timings.Date)
			continue
		}
		at, err := At(raw, now)
		if err != nil {
			r.logger().Debug("prayer time unparsable", "prayer", name, "value", raw, "error", err)
			continue
		}

		np := domain.NextPrayer{Name: name, At: at, Formatted: at.Format(TimeFormat)}
		if first == nil {
			first = &np
		}
		if at.After(now) {
			return np, true
		}
	}

	if first == nil {
		return domain.NextPrayer{}, false
	}

	tomorrow := first.At.AddDate(0, 0, 1)
	return domain.NextPrayer{Name: first.Name, At: tomorrow, Formatted: tomorrow.Format(TimeFormat)}, true
}

// Next resolves with the default logger
func Next(timings domain.PrayerTimings, now time.Time) (domain.NextPrayer, bool) {
	var r Resolver
	return r.Next(timings, now)
}

// Remaining formats the time until next as "1h 45m", "12m" or "now" once due.
// Partial minutes are dropped.
func Remaining(next domain.NextPrayer, now time.Time) string {
	diff := next.At.Sub(now)
	if diff < 0 {
		return "now"
	}
	hours := int(diff / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// Row is one line of a day's prayer table
type Row struct {
	Name      string
	Raw       string
	Formatted string
	At        time.Time
	Valid     bool
	Passed    bool
	Next      bool
}

// Schedule returns the display rows (Sunrise included) for timings at now.
// Unparsable entries are kept with Valid=false so the table keeps its shape.
func (r *Resolver) Schedule(timings domain.PrayerTimings, now time.Time) []Row {
	next, hasNext := r.Next(timings, now)

	rows := make([]Row, 0, len(DisplayPrayers))
	for _, name := range DisplayPrayers {
		raw := timings.Times[name]
		row := Row{Name: name, Raw: raw}
		if at, err := At(raw, now); err == nil {
			row.At = at
			row.Formatted = at.Format(TimeFormat)
			row.Valid = true
			row.Passed = !at.After(now)
		} else {
			row.Formatted = "--:--"
		}
		row.Next = hasNext && name == next.Name
		rows = append(rows, row)
	}
	return rows
}
