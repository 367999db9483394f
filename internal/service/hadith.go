package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmcdole/noor/internal/cache"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prefs"
)

// DefaultHadithLimit is how many hadiths a collection page loads
const DefaultHadithLimit = 20

//go:embed data/fallback_hadiths.json
var fallbackHadithsJSON []byte

// FallbackHadiths returns the built-in sample hadiths shown when the API fails
func FallbackHadiths() []domain.Hadith {
	var hadiths []domain.Hadith
	if err := json.Unmarshal(fallbackHadithsJSON, &hadiths); err != nil {
		panic(fmt.Sprintf("embedded fallback hadiths: %v", err))
	}
	return hadiths
}

// HadithResult is a page of hadiths. When Fallback is set the page holds the
// built-in samples and Cause explains why the collection could not be loaded.
type HadithResult struct {
	Collection domain.HadithCollection
	Hadiths    []domain.Hadith
	Fallback   bool
	Cause      error
}

// HadithService serves hadith collections through the cache
type HadithService struct {
	repo   domain.HadithRepository
	cache  *cache.Cache
	prefs  *prefs.Store
	limit  int
	logger *slog.Logger
}

// NewHadithService creates a new hadith service. A non-positive limit uses DefaultHadithLimit.
func NewHadithService(repo domain.HadithRepository, c *cache.Cache, p *prefs.Store, limit int, logger *slog.Logger) *HadithService {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = DefaultHadithLimit
	}
	return &HadithService{repo: repo, cache: c, prefs: p, limit: limit, logger: logger}
}

// Collections returns the built-in collections
func (s *HadithService) Collections() []domain.HadithCollection {
	return domain.DefaultHadithCollections
}

// Limit returns the configured page size
func (s *HadithService) Limit() int {
	return s.limit
}

// Hadiths loads the first limit hadiths of collection. It never fails: any
// error yields the fallback samples. A non-positive limit uses the configured one.
func (s *HadithService) Hadiths(ctx context.Context, collection string, limit int) HadithResult {
	if limit <= 0 {
		limit = s.limit
	}
	coll, ok := domain.FindHadithCollection(collection)
	if !ok {
		coll = domain.HadithCollection{ID: collection, Name: collection}
	}

	hadiths, err := cache.ReadThrough(ctx, s.cache, cache.HadithsKey(collection, limit), func(ctx context.Context) ([]domain.Hadith, error) {
		return s.repo.Hadiths(ctx, collection, limit)
	})
	if err != nil {
		s.logger.Warn("using fallback hadiths", "collection", collection, "error", err)
		return HadithResult{Collection: coll, Hadiths: FallbackHadiths(), Fallback: true, Cause: err}
	}

	s.logger.Debug("loaded hadiths", "collection", collection, "count", len(hadiths))
	return HadithResult{Collection: coll, Hadiths: hadiths}
}

// LastCollection returns the last selected collection, or the first built-in one
func (s *HadithService) LastCollection() domain.HadithCollection {
	if id, ok := s.prefs.LastHadithCollection(); ok {
		if c, ok := domain.FindHadithCollection(id); ok {
			return c
		}
	}
	return domain.DefaultHadithCollections[0]
}

// SelectCollection records the selected collection
func (s *HadithService) SelectCollection(id string) error {
	if _, ok := domain.FindHadithCollection(id); !ok {
		return fmt.Errorf("collection %q: %w", id, domain.ErrNotFound)
	}
	return s.prefs.SetLastHadithCollection(id)
}
