package prober

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewHTTPProber(t *testing.T) {
	t.Parallel()

	t.Run("empty target URL should error", func(t *testing.T) {
		p, err := NewHTTPProber("", "", time.Second)

		require.Nil(t, p)
		require.True(t, p.IsInterfaceNil())
		require.Equal(t, errEmptyTargetURL, err)
	})
	t.Run("should work", func(t *testing.T) {
		p, err := NewHTTPProber("https://example.com", "", time.Second)

		require.NotNil(t, p)
		require.False(t, p.IsInterfaceNil())
		require.Nil(t, err)
	})
}

func TestHTTPProber_Run(t *testing.T) {
	t.Run("status 200 yields available with measured latency", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`ok`))
		}))
		defer server.Close()

		p, err := NewHTTPProber(server.URL, "", time.Second)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(1), m.Availability)
		require.GreaterOrEqual(t, m.LatencyMs, float64(0))
		require.True(t, m.LatencyKnown)
	})
	t.Run("non-200 status yields unavailable with zero latency", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		p, err := NewHTTPProber(server.URL, "", time.Second)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(0), m.Availability)
		require.Equal(t, float64(0), m.LatencyMs)
		require.False(t, m.LatencyKnown)
	})
	t.Run("only exactly 200 counts as success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		p, err := NewHTTPProber(server.URL, "", time.Second)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(0), m.Availability)
	})
	t.Run("latency includes the body transfer, not just the headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte(`slow body`))
		}))
		defer server.Close()

		p, err := NewHTTPProber(server.URL, "", 2*time.Second)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(1), m.Availability)
		require.GreaterOrEqual(t, m.LatencyMs, float64(300))
	})
	t.Run("connection refused yields unavailable", func(t *testing.T) {
		p, err := NewHTTPProber("http://localhost:59999", "", time.Second)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(0), m.Availability)
		require.Equal(t, float64(0), m.LatencyMs)
		require.False(t, m.LatencyKnown)
	})
	t.Run("timeout yields unavailable, not a fault", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(2 * time.Second)
		}))
		defer server.Close()

		p, err := NewHTTPProber(server.URL, "", 200*time.Millisecond)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(0), m.Availability)
		require.Equal(t, float64(0), m.LatencyMs)
	})
	t.Run("health JSON path present yields available", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status": "ok"}`))
		}))
		defer server.Close()

		p, err := NewHTTPProber(server.URL, "status", time.Second)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(1), m.Availability)
		require.True(t, m.LatencyKnown)
	})
	t.Run("health JSON path missing yields unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"different": "ok"}`))
		}))
		defer server.Close()

		p, err := NewHTTPProber(server.URL, "status", time.Second)
		require.NoError(t, err)

		m := p.Run(context.Background())
		require.Equal(t, float64(0), m.Availability)
	})
}
