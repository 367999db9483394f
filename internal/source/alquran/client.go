// Package alquran implements domain.QuranRepository against api.alquran.cloud.
package alquran

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/source"
)

// DefaultBaseURL is the public API endpoint
const DefaultBaseURL = "https://api.alquran.cloud"

// SurahCount is the number of surahs in the Quran
const SurahCount = 114

// Client fetches surahs and editions
type Client struct {
	api *source.Client
}

// New creates a client. An empty BaseURL uses DefaultBaseURL.
func New(cfg source.Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{api: source.New("alquran", cfg, logger)}
}

type surahDTO struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"`
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	RevelationType         string `json:"revelationType"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
}

type ayahDTO struct {
	Number        int    `json:"number"`
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
	Audio         string `json:"audio"`
	Page          int    `json:"page"`
}

type editionDTO struct {
	Number int       `json:"number"`
	Ayahs  []ayahDTO `json:"ayahs"`
}

// Surahs returns all 114 surahs in order
func (c *Client) Surahs(ctx context.Context) ([]domain.Surah, error) {
	var resp source.Envelope[[]surahDTO]
	if err := c.api.GetJSON(ctx, "/v1/surah", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch surahs: %w", err)
	}
	if err := resp.Check(); err != nil {
		return nil, fmt.Errorf("fetch surahs: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("fetch surahs: %w: empty list", domain.ErrInvalidResponse)
	}

	surahs := make([]domain.Surah, 0, len(resp.Data))
	for _, s := range resp.Data {
		surahs = append(surahs, domain.Surah{
			Number:                 s.Number,
			Name:                   s.Name,
			EnglishName:            s.EnglishName,
			EnglishNameTranslation: s.EnglishNameTranslation,
			RevelationType:         s.RevelationType,
			NumberOfAyahs:          s.NumberOfAyahs,
		})
	}
	return surahs, nil
}

// Edition returns one surah in a single edition (text, translation or recitation)
func (c *Client) Edition(ctx context.Context, surah int, edition string) ([]domain.EditionAyah, error) {
	if surah < 1 || surah > SurahCount {
		return nil, fmt.Errorf("surah %d: %w", surah, domain.ErrNotFound)
	}
	if edition == "" {
		return nil, fmt.Errorf("surah %d: empty edition", surah)
	}

	path := fmt.Sprintf("/v1/surah/%d/%s", surah, url.PathEscape(edition))
	var resp source.Envelope[editionDTO]
	if err := c.api.GetJSON(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch surah %d (%s): %w", surah, edition, err)
	}
	if err := resp.Check(); err != nil {
		return nil, fmt.Errorf("fetch surah %d (%s): %w", surah, edition, err)
	}
	if len(resp.Data.Ayahs) == 0 {
		return nil, fmt.Errorf("fetch surah %d (%s): %w: no ayahs", surah, edition, domain.ErrInvalidResponse)
	}

	ayahs := make([]domain.EditionAyah, 0, len(resp.Data.Ayahs))
	for _, a := range resp.Data.Ayahs {
		ayahs = append(ayahs, domain.EditionAyah{
			Number:        a.Number,
			NumberInSurah: a.NumberInSurah,
			Text:          a.Text,
			Audio:         a.Audio,
			Page:          a.Page,
		})
	}
	return ayahs, nil
}
