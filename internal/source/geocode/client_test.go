package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CityName(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"city", `{"city":"Medina","locality":"Al Haram","countryName":"Saudi Arabia"}`, "Medina"},
		{"locality fallback", `{"city":"","locality":"Al Haram"}`, "Al Haram"},
		{"unknown", `{}`, UnknownCity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/data/reverse-geocode-client", r.URL.Path)
				assert.Equal(t, "24.4661", r.URL.Query().Get("latitude"))
				assert.Equal(t, "en", r.URL.Query().Get("localityLanguage"))
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(source.Config{BaseURL: srv.URL}, nil)
			got, err := c.CityName(context.Background(), 24.4661, 39.6142)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_CityNameFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(source.Config{BaseURL: srv.URL, RetryDelay: time.Millisecond}, nil)
	_, err := c.CityName(context.Background(), 1, 2)
	require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
}
