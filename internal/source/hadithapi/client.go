// Package hadithapi implements domain.HadithRepository against api.hadith.gading.dev.
package hadithapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/source"
)

// DefaultBaseURL is the public API endpoint
const DefaultBaseURL = "https://api.hadith.gading.dev"

// MaxLimit is the largest range the API serves in one request
const MaxLimit = 300

// Client fetches hadith ranges per collection
type Client struct {
	api *source.Client
}

// New creates a client. An empty BaseURL uses DefaultBaseURL.
func New(cfg source.Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{api: source.New("hadith", cfg, logger)}
}

type hadithDTO struct {
	Number int    `json:"number"`
	Arab   string `json:"arab"`
	ID     string `json:"id"` // Indonesian translation, not an identifier
}

type bookDTO struct {
	Name      string      `json:"name"`
	ID        string      `json:"id"`
	Available int         `json:"available"`
	Hadiths   []hadithDTO `json:"hadiths"`
	Contents  []hadithDTO `json:"contents"` // older single-hadith responses
}

type responseDTO struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Error   bool    `json:"error"`
	Data    bookDTO `json:"data"`
}

// Hadiths returns hadith 1..limit of collection
func (c *Client) Hadiths(ctx context.Context, collection string, limit int) ([]domain.Hadith, error) {
	if collection == "" {
		return nil, fmt.Errorf("hadiths: empty collection: %w", domain.ErrNotFound)
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	path := "/books/" + url.PathEscape(collection)
	query := url.Values{"range": {"1-" + strconv.Itoa(limit)}}

	var resp responseDTO
	if err := c.api.GetJSON(ctx, path, query, &resp); err != nil {
		return nil, fmt.Errorf("fetch hadiths %s: %w", collection, err)
	}
	if resp.Error || (resp.Code != 0 && resp.Code != 200) {
		return nil, fmt.Errorf("fetch hadiths %s: %w: %s", collection, domain.ErrInvalidResponse, resp.Message)
	}

	items := resp.Data.Hadiths
	if len(items) == 0 {
		items = resp.Data.Contents
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("fetch hadiths %s: %w: no hadiths", collection, domain.ErrInvalidResponse)
	}

	hadiths := make([]domain.Hadith, 0, len(items))
	for _, h := range items {
		hadiths = append(hadiths, domain.Hadith{
			ID:          strconv.Itoa(h.Number),
			Number:      h.Number,
			Title:       fmt.Sprintf("حديث رقم %d", h.Number),
			Text:        h.Arab,
			Translation: h.ID,
			Reference:   collection,
		})
	}
	return hadiths, nil
}
