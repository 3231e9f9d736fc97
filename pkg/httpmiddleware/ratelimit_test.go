package httpmiddleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

var limiterEpoch = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

// fakeClockLimiter returns a limiter whose middleware reads *now.
func fakeClockLimiter(cfg RateLimitConfig, now *time.Time) (*rateLimiter, http.Handler) {
	rl := newRateLimiter(cfg)
	rl.now = func() time.Time { return *now }
	return rl, rl.middleware(okHandler())
}

func get(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimit_BurstThenRefill(t *testing.T) {
	// Four tokens per 32s: one token every 8s.
	now := limiterEpoch
	_, h := fakeClockLimiter(RateLimitConfig{Max: 4, Window: 32 * time.Second}, &now)

	for i, want := range []string{"3", "2", "1", "0"} {
		w := get(h, "10.0.0.1:9999")
		require.Equal(t, http.StatusOK, w.Code, "burst request %d", i+1)
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, want, w.Header().Get("X-RateLimit-Remaining"))
		assert.Empty(t, w.Header().Get("Retry-After"))
	}

	steps := []struct {
		name       string
		advance    time.Duration
		code       int
		remaining  string
		retryAfter string
	}{
		{"Empty", 0, http.StatusTooManyRequests, "0", "8"},
		{"PartialRefill", 3 * time.Second, http.StatusTooManyRequests, "0", "5"},
		{"OneToken", 5 * time.Second, http.StatusOK, "0", ""},
		{"SpentAgain", 0, http.StatusTooManyRequests, "0", "8"},
		{"FullBucket", 40 * time.Second, http.StatusOK, "3", ""},
	}
	for _, s := range steps {
		now = now.Add(s.advance)
		w := get(h, "10.0.0.1:9999")
		assert.Equal(t, s.code, w.Code, s.name)
		assert.Equal(t, s.remaining, w.Header().Get("X-RateLimit-Remaining"), s.name)
		assert.Equal(t, s.retryAfter, w.Header().Get("Retry-After"), s.name)
	}
}

func TestRateLimit_RejectedBody(t *testing.T) {
	now := limiterEpoch
	_, h := fakeClockLimiter(RateLimitConfig{Max: 1, Window: time.Second}, &now)

	require.Equal(t, http.StatusOK, get(h, "10.0.0.1:9999").Code)
	w := get(h, "10.0.0.1:9999")

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, float64(429), body["code"])
	assert.Equal(t, "rate limit exceeded", body["message"])
}

func TestRateLimit_DeniedRequestsDoNotDrainBucket(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{Max: 2, Window: 16 * time.Second})

	for range 2 {
		_, _, ok := rl.take("a", limiterEpoch)
		require.True(t, ok)
	}
	// Hammering an empty bucket must not push the next token further out.
	for range 10 {
		_, wait, ok := rl.take("a", limiterEpoch.Add(time.Second))
		require.False(t, ok)
		assert.Equal(t, 7*time.Second, wait)
	}

	remaining, _, ok := rl.take("a", limiterEpoch.Add(8*time.Second))
	assert.True(t, ok)
	assert.Zero(t, remaining)
}

func TestRateLimit_KeysAreIndependent(t *testing.T) {
	now := limiterEpoch
	_, h := fakeClockLimiter(RateLimitConfig{Max: 1, Window: time.Minute}, &now)

	assert.Equal(t, http.StatusOK, get(h, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, get(h, "10.0.0.2:1234").Code)
	// Port is not part of the key.
	assert.Equal(t, http.StatusTooManyRequests, get(h, "10.0.0.1:5678").Code)
}

func TestRateLimit_CustomKeyFunc(t *testing.T) {
	now := limiterEpoch
	rl := newRateLimiter(RateLimitConfig{
		Max:     1,
		Window:  time.Minute,
		KeyFunc: func(r *http.Request) string { return r.Header.Get("X-API-Key") },
	})
	rl.now = func() time.Time { return now }
	h := rl.middleware(okHandler())

	send := func(key string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-API-Key", key)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("key-a"))
	assert.Equal(t, http.StatusTooManyRequests, send("key-a"))
	assert.Equal(t, http.StatusOK, send("key-b"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"RemoteAddr", "192.168.1.1:4444", nil, "192.168.1.1"},
		{"RemoteAddrWithoutPort", "192.168.1.1", nil, "192.168.1.1"},
		{
			name:       "ForwardedForFirstHop",
			remoteAddr: "192.168.1.1:4444",
			headers:    map[string]string{"X-Forwarded-For": " 203.0.113.50 , 70.41.3.18"},
			want:       "203.0.113.50",
		},
		{
			name:       "RealIP",
			remoteAddr: "192.168.1.1:4444",
			headers:    map[string]string{"X-Real-IP": "198.51.100.7"},
			want:       "198.51.100.7",
		},
		{
			name:       "ForwardedForWinsOverRealIP",
			remoteAddr: "192.168.1.1:4444",
			headers: map[string]string{
				"X-Forwarded-For": "203.0.113.50",
				"X-Real-IP":       "198.51.100.7",
			},
			want: "203.0.113.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}

func TestRateLimit_Defaults(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{})
	assert.Equal(t, 1, rl.cfg.Max)
	assert.Equal(t, time.Minute, rl.cfg.Window)
	require.NotNil(t, rl.cfg.KeyFunc)

	_, _, ok := rl.take("a", limiterEpoch)
	require.True(t, ok)
	_, wait, ok := rl.take("a", limiterEpoch)
	assert.False(t, ok)
	assert.InDelta(t, float64(time.Minute), float64(wait), float64(time.Millisecond))
}

func TestRateLimit_Evict(t *testing.T) {
	// Two tokens per 16s: one token every 8s.
	rl := newRateLimiter(RateLimitConfig{Max: 2, Window: 16 * time.Second})

	_, _, ok := rl.take("idle", limiterEpoch)
	require.True(t, ok)
	for range 2 {
		_, _, ok = rl.take("active", limiterEpoch.Add(10*time.Second))
		require.True(t, ok)
	}
	require.Equal(t, 2, rl.size())

	// idle was last seen 20s ago, active 10s ago.
	rl.evict(limiterEpoch.Add(20 * time.Second))
	assert.Equal(t, 1, rl.size())

	// active keeps its partly refilled bucket: 1.25 tokens, not a fresh 2.
	remaining, _, ok := rl.take("active", limiterEpoch.Add(20*time.Second))
	require.True(t, ok)
	assert.Zero(t, remaining)
	_, wait, ok := rl.take("active", limiterEpoch.Add(20*time.Second))
	assert.False(t, ok)
	assert.Equal(t, 6*time.Second, wait)

	// An evicted client starts again with a full bucket.
	remaining, _, ok = rl.take("idle", limiterEpoch.Add(20*time.Second))
	require.True(t, ok)
	assert.Equal(t, 1, remaining)
}

func TestRateLimit_EvictionStopsWithContext(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{Max: 1, Window: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		rl.runEviction(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("eviction loop did not stop after cancel")
	}
}
