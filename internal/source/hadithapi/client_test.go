package hadithapi

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

func TestClient_Hadiths(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/books/bukhari", r.URL.Path)
		assert.Equal(t, "1-2", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(`{"code":200,"message":"OK","error":false,"data":{
			"name":"HR. Bukhari","id":"bukhari","available":6638,
			"hadiths":[{"number":1,"arab":"إِنَّمَا الأَعْمَالُ بِالنِّيَّاتِ","id":"Sesungguhnya setiap amalan tergantung pada niatnya"},{"number":2,"arab":"نص","id":"teks"}]
		}}`))
	})

	hadiths, err := c.Hadiths(context.Background(), "bukhari", 2)
	require.NoError(t, err)
	require.Len(t, hadiths, 2)

	assert.Equal(t, "1", hadiths[0].ID)
	assert.Equal(t, "حديث رقم 1", hadiths[0].Title)
	assert.Equal(t, "إِنَّمَا الأَعْمَالُ بِالنِّيَّاتِ", hadiths[0].Text)
	assert.Contains(t, hadiths[0].Translation, "niatnya")
	assert.Equal(t, "bukhari", hadiths[1].Reference)
}

func TestClient_HadithsContentsShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"contents":[{"number":7,"arab":"x","id":"y"}]}}`))
	})

	hadiths, err := c.Hadiths(context.Background(), "muslim", 20)
	require.NoError(t, err)
	require.Len(t, hadiths, 1)
	assert.Equal(t, 7, hadiths[0].Number)
}

func TestClient_HadithsLimitIsClamped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1-300", r.URL.Query().Get("range"))
		_, _ = w.Write([]byte(`{"code":200,"data":{"hadiths":[{"number":1,"arab":"x","id":"y"}]}}`))
	})

	_, err := c.Hadiths(context.Background(), "muslim", 5000)
	require.NoError(t, err)
}

func TestClient_HadithsErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
		want error
	}{
		{"api error flag", `{"code":404,"message":"Books not found","error":true,"data":{}}`, http.StatusOK, domain.ErrInvalidResponse},
		{"empty list", `{"code":200,"data":{"hadiths":[]}}`, http.StatusOK, domain.ErrInvalidResponse},
		{"http 404", `{}`, http.StatusNotFound, domain.ErrUnexpectedStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Hadiths(context.Background(), "nope", 20)
			require.ErrorIs(t, err, tt.want)
		})
	}

	c := New(source.Config{BaseURL: "http://127.0.0.1:1"}, nil)
	_, err := c.Hadiths(context.Background(), "", 20)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
