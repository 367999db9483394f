package source

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/noor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return New("test", Config{BaseURL: url, RetryDelay: time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/thing", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("method"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"code":200,"status":"OK","data":{"name":"x"}}`))
	}))
	defer srv.Close()

	var got Envelope[struct {
		Name string `json:"name"`
	}]
	err := newTestClient(srv.URL+"/").GetJSON(context.Background(), "/v1/thing", url.Values{"method": {"2"}}, &got)
	require.NoError(t, err)
	require.NoError(t, got.Check())
	assert.Equal(t, "x", got.Data.Name)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:    "not found",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			want:    domain.ErrUnexpectedStatus,
		},
		{
			name:    "server error after retries",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			want:    domain.ErrUnexpectedStatus,
		},
		{
			name:    "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) },
			want:    domain.ErrInvalidResponse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			var dest map[string]any
			err := newTestClient(srv.URL).GetJSON(context.Background(), "/", nil, &dest)
			require.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsRetryable(err))
		})
	}
}

func TestClient_Offline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	var dest map[string]any
	err := newTestClient(addr).GetJSON(context.Background(), "/", nil, &dest)
	require.ErrorIs(t, err, domain.ErrOffline)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var dest struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, newTestClient(srv.URL).GetJSON(context.Background(), "/", nil, &dest))
	assert.True(t, dest.OK)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NoRetryOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	var dest any
	require.Error(t, newTestClient(srv.URL).GetJSON(context.Background(), "/", nil, &dest))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dest any
	err := newTestClient(srv.URL).GetJSON(ctx, "/", nil, &dest)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEnvelope_Check(t *testing.T) {
	assert.NoError(t, Envelope[int]{Code: 200}.Check())
	err := Envelope[int]{Code: 404, Status: "Not Found"}.Check()
	require.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Contains(t, err.Error(), "404")
}
