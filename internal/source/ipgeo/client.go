// Package ipgeo implements domain.Locator by geolocating the public IP address.
// The result is city-level at best and stands in for device geolocation.
package ipgeo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/source"
)

// DefaultBaseURL is the public API endpoint
const DefaultBaseURL = "https://ipapi.co"

// Client locates the caller from its IP
type Client struct {
	api    *source.Client
	logger *slog.Logger
}

// New creates a client. An empty BaseURL uses DefaultBaseURL.
func New(cfg source.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{api: source.New("ipgeo", cfg, logger), logger: logger}
}

type locateDTO struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Error     bool     `json:"error"`
	Reason    string   `json:"reason"`
}

// Locate returns approximate coordinates. Every failure, including network
// errors, is reported as domain.ErrLocationUnavailable.
func (c *Client) Locate(ctx context.Context) (domain.Location, error) {
	var resp locateDTO
	if err := c.api.GetJSON(ctx, "/json/", nil, &resp); err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.Location{}, err
		}
		c.logger.Warn("ip geolocation failed", "error", err)
		return domain.Location{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	if resp.Error {
		c.logger.Warn("ip geolocation refused", "reason", resp.Reason)
		return domain.Location{}, fmt.Errorf("%w: %s", domain.ErrLocationUnavailable, resp.Reason)
	}
	if resp.Latitude == nil || resp.Longitude == nil || !domain.ValidCoordinates(*resp.Latitude, *resp.Longitude) {
		return domain.Location{}, fmt.Errorf("%w: no coordinates in response", domain.ErrLocationUnavailable)
	}

	return domain.Location{
		Latitude:  *resp.Latitude,
		Longitude: *resp.Longitude,
		City:      resp.City,
	}, nil
}

// Static is a Locator that always returns a configured location
type Static struct {
	Location domain.Location
}

// Locate returns the configured location
func (s Static) Locate(context.Context) (domain.Location, error) {
	if !s.Location.Valid() {
		return domain.Location{}, domain.ErrLocationUnavailable
	}
	return s.Location, nil
}

// Chain tries each locator in order and returns the first success
type Chain []domain.Locator

// Locate returns the first successful location
func (c Chain) Locate(ctx context.Context) (domain.Location, error) {
	var errs []error
	for _, l := range c {
		if l == nil {
			continue
		}
		loc, err := l.Locate(ctx)
		if err == nil {
			return loc, nil
		}
		if errors.Is(err, context.Canceled) {
			return domain.Location{}, err
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return domain.Location{}, domain.ErrLocationUnavailable
	}
	return domain.Location{}, errors.Join(errs...)
}
