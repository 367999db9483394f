package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/noor/internal/cache"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prefs"
	"github.com/mmcdole/noor/internal/store"
	"github.com/stretchr/testify/require"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type testEnv struct {
	cache *cache.Cache
	prefs *prefs.Store
	clock *fakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := &fakeClock{now: time.Date(2026, 10, 16, 13, 0, 0, 0, time.UTC)}
	return &testEnv{
		cache: cache.New(db.Namespace(store.NamespaceCache), quietLogger, cache.WithClock(clock.Now)),
		prefs: prefs.New(db.Namespace(store.NamespacePrefs), quietLogger),
		clock: clock,
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// fakeQuran serves editions from memory and counts calls
type fakeQuran struct {
	surahs   []domain.Surah
	editions map[string][]domain.EditionAyah
	err      error

	surahCalls   atomic.Int32
	editionCalls atomic.Int32
}

func (f *fakeQuran) Surahs(context.Context) ([]domain.Surah, error) {
	f.surahCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.surahs, nil
}

func (f *fakeQuran) Edition(_ context.Context, surah int, edition string) ([]domain.EditionAyah, error) {
	f.editionCalls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	ayahs, ok := f.editions[edition]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ayahs, nil
}

type fakeHadiths struct {
	hadiths []domain.Hadith
	err     error
	calls   atomic.Int32
}

func (f *fakeHadiths) Hadiths(context.Context, string, int) ([]domain.Hadith, error) {
	f.calls.Add(1)
	return f.hadiths, f.err
}

type fakeCalendar struct {
	date  domain.HijriDate
	err   error
	calls atomic.Int32
}

func (f *fakeCalendar) HijriDate(context.Context, time.Time) (domain.HijriDate, error) {
	f.calls.Add(1)
	return f.date, f.err
}

type fakePrayer struct {
	timings domain.PrayerTimings
	err     error
	calls   atomic.Int32
	method  atomic.Int32
}

func (f *fakePrayer) Timings(_ context.Context, date time.Time, _, _ float64, method int) (domain.PrayerTimings, error) {
	f.calls.Add(1)
	f.method.Store(int32(method))
	if f.err != nil {
		return domain.PrayerTimings{}, f.err
	}
	t := f.timings
	t.Date = date.Format(time.DateOnly)
	return t, nil
}

type fakeGeocoder struct {
	city string
	err  error
}

func (f fakeGeocoder) CityName(context.Context, float64, float64) (string, error) {
	return f.city, f.err
}

type fakeLocator struct {
	loc   domain.Location
	err   error
	calls atomic.Int32
}

func (f *fakeLocator) Locate(context.Context) (domain.Location, error) {
	f.calls.Add(1)
	return f.loc, f.err
}
