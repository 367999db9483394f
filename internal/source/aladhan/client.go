// Package aladhan implements the calendar and prayer repositories against api.aladhan.com.
package aladhan

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/source"
)

// DefaultBaseURL is the public API endpoint
const DefaultBaseURL = "https://api.aladhan.com"

// DefaultMethod is ISNA, the calculation method the reader has always used
const DefaultMethod = 2

// dateFormat is the DD-MM-YYYY form the API expects in paths
const dateFormat = "02-01-2006"

// Client fetches Hijri dates and prayer timings
type Client struct {
	api *source.Client
}

// New creates a client. An empty BaseURL uses DefaultBaseURL.
func New(cfg source.Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{api: source.New("aladhan", cfg, logger)}
}

type hijriDTO struct {
	Hijri     domain.CalendarDate `json:"hijri"`
	Gregorian domain.CalendarDate `json:"gregorian"`
}

type timingsDTO struct {
	Timings map[string]string `json:"timings"`
}

// HijriDate converts date (by its local calendar day) to the Hijri calendar
func (c *Client) HijriDate(ctx context.Context, date time.Time) (domain.HijriDate, error) {
	path := "/v1/gToH/" + date.Format(dateFormat)

	var resp source.Envelope[hijriDTO]
	if err := c.api.GetJSON(ctx, path, nil, &resp); err != nil {
		return domain.HijriDate{}, fmt.Errorf("fetch hijri date: %w", err)
	}
	if err := resp.Check(); err != nil {
		return domain.HijriDate{}, fmt.Errorf("fetch hijri date: %w", err)
	}
	if resp.Data.Hijri.Day == "" || resp.Data.Hijri.Year == "" {
		return domain.HijriDate{}, fmt.Errorf("fetch hijri date: %w: missing hijri fields", domain.ErrInvalidResponse)
	}

	return domain.HijriDate{Hijri: resp.Data.Hijri, Gregorian: resp.Data.Gregorian}, nil
}

// Timings returns the prayer times for date at the given coordinates
func (c *Client) Timings(ctx context.Context, date time.Time, latitude, longitude float64, method int) (domain.PrayerTimings, error) {
	if method <= 0 {
		method = DefaultMethod
	}
	path := "/v1/timings/" + date.Format(dateFormat)
	query := url.Values{
		"latitude":  {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude": {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"method":    {strconv.Itoa(method)},
	}

	var resp source.Envelope[timingsDTO]
	if err := c.api.GetJSON(ctx, path, query, &resp); err != nil {
		return domain.PrayerTimings{}, fmt.Errorf("fetch prayer times: %w", err)
	}
	if err := resp.Check(); err != nil {
		return domain.PrayerTimings{}, fmt.Errorf("fetch prayer times: %w", err)
	}
	if len(resp.Data.Timings) == 0 {
		return domain.PrayerTimings{}, fmt.Errorf("fetch prayer times: %w: no timings", domain.ErrInvalidResponse)
	}

	return domain.PrayerTimings{
		Date:  date.Format(time.DateOnly),
		Times: resp.Data.Timings,
	}, nil
}
