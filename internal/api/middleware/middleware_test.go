package middleware_test

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/unitycure/backend/internal/adapters/cache"
	"github.com/zatekoja/unitycure/backend/internal/api/middleware"
)

func newCacheMiddleware(t *testing.T) (*middleware.CacheMiddleware, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return middleware.NewCacheMiddleware(cache.NewRedisAdapter(client), zerolog.Nop()), mr
}

func countingHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"hospitals":[]}`))
	})
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestCacheMiddleware_HitAfterMiss(t *testing.T) {
	m, _ := newCacheMiddleware(t)
	calls := 0
	h := m.Middleware(countingHandler(&calls))

	first := get(h, "/api/hospitals?specialty=General")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get(h, "/api/hospitals?specialty=General")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	other := get(h, "/api/hospitals?specialty=Community")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestCacheMiddleware_InvalidateCache(t *testing.T) {
	m, _ := newCacheMiddleware(t)
	calls := 0
	h := m.Middleware(countingHandler(&calls))

	get(h, "/api/providers")
	require.NoError(t, m.InvalidateCache(context.Background()))

	rec := get(h, "/api/providers")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, calls)
}

func TestCacheMiddleware_LongestPrefixSetsTTL(t *testing.T) {
	m, mr := newCacheMiddleware(t)
	calls := 0
	h := m.Middleware(countingHandler(&calls))

	get(h, "/api/hospitals/nearby/40.7/-74.0")

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "http:cache:"))
	assert.Equal(t, 120*time.Second, mr.TTL(keys[0]))
}

func TestCacheMiddleware_SkipsWritesAndUncachedRoutes(t *testing.T) {
	m, mr := newCacheMiddleware(t)
	calls := 0
	h := m.Middleware(countingHandler(&calls))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/providers", strings.NewReader(`{}`)))
	assert.Empty(t, rec.Header().Get("X-Cache"))

	rec = get(h, "/api/appointments")
	assert.Empty(t, rec.Header().Get("X-Cache"))

	assert.Equal(t, 2, calls)
	assert.Empty(t, mr.Keys())
}

func TestCacheMiddleware_DoesNotStoreErrors(t *testing.T) {
	m, mr := newCacheMiddleware(t)
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	get(h, "/api/hospitals")
	assert.Empty(t, mr.Keys())
}

func TestCORSMiddleware(t *testing.T) {
	calls := 0
	h := middleware.CORSMiddleware([]string{"https://unitycure.example"})(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	req.Header.Set("Origin", "https://unitycure.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://unitycure.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", rec.Header().Get("Vary"))

	req = httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/hospitals", nil)
	req.Header.Set("Origin", "https://unitycure.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, calls)
}

func TestCORSMiddleware_EmptyListAllowsAny(t *testing.T) {
	calls := 0
	h := middleware.CORSMiddleware(nil)(countingHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	h := middleware.RecoveryMiddleware(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil hospital")
	}))

	rec := get(h, "/api/hospitals")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"internal server error"}`, rec.Body.String())
}

func TestResponseOptimization_ETagAndGzip(t *testing.T) {
	body := strings.Repeat(`{"name":"Unity General Hospital"},`, 50)
	h := middleware.ResponseOptimization(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
	assert.Equal(t, "public, max-age=300, must-revalidate", rec.Header().Get("Cache-Control"))
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	zr, err := gzip.NewReader(rec.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, body, string(plain))

	req = httptest.NewRequest(http.MethodGet, "/api/hospitals", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Header().Get("Content-Encoding"))
	assert.Zero(t, rec.Body.Len())
}

func TestResponseOptimization_WritesAreNotCached(t *testing.T) {
	h := middleware.ResponseOptimization(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/feedback", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Get("ETag"))
}
