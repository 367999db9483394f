package cache

import (
	"strings"
	"time"
)

// Category groups cache keys that share a freshness rule
type Category string

const (
	CategorySurahs      Category = "surahs"
	CategoryAyahs       Category = "ayahs"
	CategoryHijriDate   Category = "hijri-date"
	CategoryPrayerTimes Category = "prayer-times"
	CategoryHadiths     Category = "hadiths"
	CategoryOther       Category = "other"
)

// DefaultTTL applies to every duration-based category unless configured otherwise
const DefaultTTL = time.Hour

// Rule decides whether an entry written at storedAt is still valid at now
type Rule struct {
	// TTL is the maximum age. Ignored when SameDay is set.
	TTL time.Duration

	// SameDay keeps the entry valid until local midnight of the day it was written
	SameDay bool
}

// Fresh reports whether an entry stored at storedAt is valid at now
func (r Rule) Fresh(storedAt, now time.Time) bool {
	if r.SameDay {
		sy, sm, sd := storedAt.In(now.Location()).Date()
		ny, nm, nd := now.Date()
		return sy == ny && sm == nm && sd == nd
	}
	return now.Sub(storedAt) < r.TTL
}

// Policy is the TTL table keyed by category
type Policy map[Category]Rule

// DefaultPolicy returns the built-in freshness table
func DefaultPolicy() Policy {
	return Policy{
		CategorySurahs:      {TTL: DefaultTTL},
		CategoryAyahs:       {TTL: DefaultTTL},
		CategoryHijriDate:   {SameDay: true},
		CategoryPrayerTimes: {TTL: DefaultTTL},
		CategoryHadiths:     {TTL: DefaultTTL},
		CategoryOther:       {TTL: DefaultTTL},
	}
}

// WithTTL returns a copy of p with category's duration replaced.
// Non-positive durations are ignored.
func (p Policy) WithTTL(category Category, ttl time.Duration) Policy {
	out := make(Policy, len(p))
	for k, v := range p {
		out[k] = v
	}
	if ttl > 0 {
		out[category] = Rule{TTL: ttl}
	}
	return out
}

// Rule returns the rule for key's category
func (p Policy) Rule(key string) Rule {
	if r, ok := p[CategoryOf(key)]; ok {
		return r
	}
	if r, ok := p[CategoryOther]; ok {
		return r
	}
	return Rule{TTL: DefaultTTL}
}

// CategoryOf classifies a cache key by its prefix
func CategoryOf(key string) Category {
	switch {
	case key == keySurahs:
		return CategorySurahs
	case key == keyHijriDate:
		return CategoryHijriDate
	case strings.HasPrefix(key, prefixAyahs):
		return CategoryAyahs
	case strings.HasPrefix(key, prefixPrayerTimes):
		return CategoryPrayerTimes
	case strings.HasPrefix(key, prefixHadiths):
		return CategoryHadiths
	default:
		return CategoryOther
	}
}
