package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/noor/internal/cache"
	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/prefs"
	"golang.org/x/sync/errgroup"
)

// Default editions
const (
	DefaultTextEdition        = "quran-uthmani"
	DefaultTranslationEdition = "ar.muyassar"
)

// QuranService serves surahs and merged ayahs through the cache
type QuranService struct {
	repo   domain.QuranRepository
	cache  *cache.Cache
	prefs  *prefs.Store
	logger *slog.Logger

	textEdition        string
	translationEdition string
}

// NewQuranService creates a new Quran service. Empty editions use the defaults.
func NewQuranService(repo domain.QuranRepository, c *cache.Cache, p *prefs.Store, textEdition, translationEdition string, logger *slog.Logger) *QuranService {
	if logger == nil {
		logger = slog.Default()
	}
	if textEdition == "" {
		textEdition = DefaultTextEdition
	}
	if translationEdition == "" {
		translationEdition = DefaultTranslationEdition
	}
	return &QuranService{
		repo:               repo,
		cache:              c,
		prefs:              p,
		logger:             logger,
		textEdition:        textEdition,
		translationEdition: translationEdition,
	}
}

// Surahs returns the surah list
func (s *QuranService) Surahs(ctx context.Context) ([]domain.Surah, error) {
	surahs, err := cache.ReadThrough(ctx, s.cache, cache.SurahsKey(), s.repo.Surahs)
	if err != nil {
		s.logger.Error("failed to get surahs", "error", err)
		return nil, err
	}
	return surahs, nil
}

// Surah returns one surah's metadata
func (s *QuranService) Surah(ctx context.Context, number int) (domain.Surah, error) {
	surahs, err := s.Surahs(ctx)
	if err != nil {
		return domain.Surah{}, err
	}
	for _, surah := range surahs {
		if surah.Number == number {
			return surah, nil
		}
	}
	return domain.Surah{}, fmt.Errorf("surah %d: %w", number, domain.ErrNotFound)
}

// Ayahs returns a surah's text merged with its translation and the reciter's audio.
// An empty reciterID uses the selected reciter.
func (s *QuranService) Ayahs(ctx context.Context, surah int, reciterID string) ([]domain.Ayah, error) {
	if reciterID == "" {
		reciterID = s.SelectedReciter().ID
	}

	ayahs, err := cache.ReadThrough(ctx, s.cache, cache.AyahsKey(surah, reciterID), func(ctx context.Context) ([]domain.Ayah, error) {
		return s.fetchAyahs(ctx, surah, reciterID)
	})
	if err != nil {
		s.logger.Error("failed to get ayahs", "surah", surah, "reciter", reciterID, "error", err)
		return nil, err
	}
	return ayahs, nil
}

// fetchAyahs loads the three editions concurrently and joins them by position in surah
func (s *QuranService) fetchAyahs(ctx context.Context, surah int, reciterID string) ([]domain.Ayah, error) {
	var text, translation, audio []domain.EditionAyah

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		text, err = s.repo.Edition(gctx, surah, s.textEdition)
		return err
	})
	g.Go(func() (err error) {
		translation, err = s.repo.Edition(gctx, surah, s.translationEdition)
		return err
	})
	g.Go(func() (err error) {
		audio, err = s.repo.Edition(gctx, surah, reciterID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return mergeEditions(text, translation, audio)
}

// mergeEditions pairs each text ayah with the translation and audio ayah of the
// same numberInSurah. A missing partner means the editions disagree.
func mergeEditions(text, translation, audio []domain.EditionAyah) ([]domain.Ayah, error) {
	byPos := func(editions []domain.EditionAyah) map[int]domain.EditionAyah {
		m := make(map[int]domain.EditionAyah, len(editions))
		for _, a := range editions {
			m[a.NumberInSurah] = a
		}
		return m
	}
	translations := byPos(translation)
	recitations := byPos(audio)

	ayahs := make([]domain.Ayah, 0, len(text))
	for _, t := range text {
		tr, ok := translations[t.NumberInSurah]
		if !ok {
			return nil, fmt.Errorf("%w: ayah %d missing from translation", domain.ErrInvalidResponse, t.NumberInSurah)
		}
		rec, ok := recitations[t.NumberInSurah]
		if !ok {
			return nil, fmt.Errorf("%w: ayah %d missing from recitation", domain.ErrInvalidResponse, t.NumberInSurah)
		}
		ayahs = append(ayahs, domain.Ayah{
			Number:        t.Number,
			NumberInSurah: t.NumberInSurah,
			Text:          t.Text,
			Translation:   tr.Text,
			Audio:         rec.Audio,
			Page:          t.Page,
		})
	}
	if len(ayahs) == 0 {
		return nil, fmt.Errorf("%w: surah has no ayahs", domain.ErrInvalidResponse)
	}
	return ayahs, nil
}

// Reciters returns the built-in reciters
func (s *QuranService) Reciters() []domain.Reciter {
	return domain.DefaultReciters
}

// SelectedReciter returns the stored reciter, or the first built-in one
func (s *QuranService) SelectedReciter() domain.Reciter {
	if r, ok := s.prefs.SelectedReciter(); ok {
		return r
	}
	return domain.DefaultReciters[0]
}

// SelectReciter stores the reciter with the given id
func (s *QuranService) SelectReciter(id string) (domain.Reciter, error) {
	for _, r := range domain.DefaultReciters {
		if r.ID == id {
			if err := s.prefs.SetSelectedReciter(r); err != nil {
				return domain.Reciter{}, err
			}
			s.logger.Info("selected reciter", "reciter", r.ID)
			return r, nil
		}
	}
	return domain.Reciter{}, fmt.Errorf("reciter %q: %w", id, domain.ErrNotFound)
}

// LastRead returns the last opened surah
func (s *QuranService) LastRead() (domain.Surah, bool) {
	return s.prefs.LastReadSurah()
}

// MarkRead records surah as the last opened one. Failures are logged.
func (s *QuranService) MarkRead(surah domain.Surah) {
	if err := s.prefs.SetLastReadSurah(surah); err != nil {
		s.logger.Warn("failed to save last read surah", "surah", surah.Number, "error", err)
	}
}

// FindSurah ranks surahs against query. A number selects that surah; text is
// matched fuzzily against the transliterated, translated and Arabic names.
func FindSurah(surahs []domain.Surah, query string) []domain.Surah {
	query = strings.TrimSpace(query)
	if query == "" {
		return surahs
	}

	if n, err := strconv.Atoi(query); err == nil {
		for _, surah := range surahs {
			if surah.Number == n {
				return []domain.Surah{surah}
			}
		}
		return nil
	}

	targets := make([]string, len(surahs))
	for i, surah := range surahs {
		targets[i] = searchText(surah)
	}

	ranks := fuzzy.RankFindNormalizedFold(normalizeName(query), targets)
	sort.Stable(ranks)

	out := make([]domain.Surah, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, surahs[r.OriginalIndex])
	}
	return out
}

func searchText(s domain.Surah) string {
	return normalizeName(s.EnglishName) + " " + strings.ToLower(s.EnglishNameTranslation) + " " + s.Name
}

// normalizeName drops the punctuation transliterations disagree on ("Al-Kahf", "Al Kahf", "Al-Kahf'")
func normalizeName(s string) string {
	return strings.NewReplacer("-", "", "'", "", " ", "").Replace(strings.ToLower(s))
}
