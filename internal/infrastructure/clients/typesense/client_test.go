package typesense

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/unitycure/backend/pkg/config"
)

func TestNewClient_WaitsForHealthyServer(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"ok":false}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client, err := NewClient(context.Background(), &config.TypesenseConfig{URL: srv.URL, APIKey: "xyz"}, zerolog.Nop())
	require.NoError(t, err)
	assert.NotNil(t, client.Client())
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestNewClient_GivesUpWhenContextEnds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, err := NewClient(ctx, &config.TypesenseConfig{URL: srv.URL, APIKey: "xyz"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Typesense")
}
