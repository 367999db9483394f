package aladhan

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/mmcdole/noor/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(source.Config{BaseURL: srv.URL, RetryDelay: time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var testDate = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func TestClient_HijriDate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/gToH/16-10-2026", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":200,"status":"OK","data":{
			"hijri":{"date":"04-05-1448","day":"04","weekday":{"en":"Al Juma'a","ar":"الجمعة"},"month":{"number":5,"en":"Jumādá al-ūlá","ar":"جُمادى الأولى"},"year":"1448"},
			"gregorian":{"date":"16-10-2026","day":"16","month":{"number":10,"en":"October"},"year":"2026"}
		}}`))
	})

	got, err := c.HijriDate(context.Background(), testDate)
	require.NoError(t, err)
	assert.Equal(t, "04", got.Hijri.Day)
	assert.Equal(t, "جُمادى الأولى", got.Hijri.Month.Ar)
	assert.Equal(t, 5, got.Hijri.Month.Number)
	assert.Equal(t, "1448", got.Hijri.Year)
	assert.Equal(t, "16 October 2026", got.Gregorian.String())
}

func TestClient_HijriDateMissingFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"status":"OK","data":{}}`))
	})

	_, err := c.HijriDate(context.Background(), testDate)
	require.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestClient_Timings(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/timings/16-10-2026", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "24.4661", q.Get("latitude"))
		assert.Equal(t, "39.6142", q.Get("longitude"))
		assert.Equal(t, "2", q.Get("method"))
		_, _ = w.Write([]byte(`{"code":200,"status":"OK","data":{"timings":{
			"Fajr":"04:58","Sunrise":"06:13","Dhuhr":"12:00","Asr":"15:20","Sunset":"17:47","Maghrib":"17:47","Isha":"19:02","Midnight":"00:00"
		},"date":{"readable":"16 Oct 2026"}}}`))
	})

	got, err := c.Timings(context.Background(), testDate, 24.4661, 39.6142, 0)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", got.Date)
	assert.Equal(t, "15:20", got.Times["Asr"])
	assert.Len(t, got.Times, 8)
}

func TestClient_TimingsErrors(t *testing.T) {
	t.Run("api code", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":400,"status":"Bad Request","data":"Please specify a valid latitude"}`))
		})
		_, err := c.Timings(context.Background(), testDate, 0, 0, DefaultMethod)
		require.ErrorIs(t, err, domain.ErrInvalidResponse)
	})

	t.Run("http status", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		_, err := c.Timings(context.Background(), testDate, 0, 0, DefaultMethod)
		require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	})
}
