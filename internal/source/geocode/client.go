// Package geocode implements domain.Geocoder with the BigDataCloud reverse geocoding API.
package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/mmcdole/noor/internal/source"
)

// DefaultBaseURL is the public API endpoint
const DefaultBaseURL = "https://api.bigdatacloud.net"

// UnknownCity is returned when the response names neither a city nor a locality
const UnknownCity = "Unknown Location"

// Client resolves coordinates to a city name
type Client struct {
	api      *source.Client
	language string
}

// New creates a client. An empty BaseURL uses DefaultBaseURL.
func New(cfg source.Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{api: source.New("geocode", cfg, logger), language: "en"}
}

type reverseDTO struct {
	City        string `json:"city"`
	Locality    string `json:"locality"`
	CountryName string `json:"countryName"`
}

// CityName returns the city, falling back to the locality, then UnknownCity
func (c *Client) CityName(ctx context.Context, latitude, longitude float64) (string, error) {
	query := url.Values{
		"latitude":         {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude":        {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"localityLanguage": {c.language},
	}

	var resp reverseDTO
	if err := c.api.GetJSON(ctx, "/data/reverse-geocode-client", query, &resp); err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}

	switch {
	case resp.City != "":
		return resp.City, nil
	case resp.Locality != "":
		return resp.Locality, nil
	default:
		return UnknownCity, nil
	}
}
