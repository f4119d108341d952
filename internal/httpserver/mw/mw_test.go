package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
)

func TestLimiterRefill(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{Burst: 2, RefillPerIPPerMin: 60, now: func() time.Time { return now }})

	for i := 0; i < 2; i++ {
		if ok, _, _ := l.take("a"); !ok {
			t.Fatalf("take() %d refused, want allowed", i+1)
		}
	}
	ok, remaining, retry := l.take("a")
	if ok || remaining != 0 || retry != 1 {
		t.Errorf("take() = %v, %d, %d, want false, 0, 1", ok, remaining, retry)
	}
	if ok, _, _ := l.take("b"); !ok {
		t.Error("take(b) refused, buckets must be per key")
	}

	now = now.Add(time.Second)
	if ok, _, _ := l.take("a"); !ok {
		t.Error("take() after refill refused")
	}
}

func TestLimiterSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newLimiter(RateLimitConfig{
		Burst:         1,
		IdleTTL:       time.Minute,
		SweepInterval: time.Minute,
		now:           func() time.Time { return now },
	})

	l.take("a")
	l.take("b")
	if n := l.size(); n != 2 {
		t.Fatalf("size() = %d, want 2", n)
	}

	now = now.Add(5 * time.Minute)
	l.take("c")
	if n := l.size(); n != 1 {
		t.Errorf("size() after sweep = %d, want 1", n)
	}
}

func TestMatchHost(t *testing.T) {
	tests := []struct {
		host, pattern string
		want          bool
	}{
		{"notes.local", "notes.local", true},
		{"api.example.com", "*.example.com", true},
		{"example.com", "*.example.com", false},
		{"evil-example.com", "*.example.com", false},
		{"other.local", "notes.local", false},
	}
	for _, tt := range tests {
		if got := matchHost(tt.host, tt.pattern); got != tt.want {
			t.Errorf("matchHost(%q, %q) = %v, want %v", tt.host, tt.pattern, got, tt.want)
		}
	}
}

func TestEnforceHost(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	h := EnforceHost([]string{"Notes.Local:8080"}, logger.NewNop())(ok)

	tests := []struct {
		host string
		want int
	}{
		{"notes.local", http.StatusTeapot},
		{"NOTES.local:9999", http.StatusTeapot},
		{"example.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Host = tt.host
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("Host %q status = %d, want %d", tt.host, rec.Code, tt.want)
		}
	}

	pass := EnforceHost(nil, logger.NewNop())(ok)
	rec := httptest.NewRecorder()
	pass.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("empty allowlist status = %d, want passthrough", rec.Code)
	}
}

func TestLogStatus(t *testing.T) {
	h := Log(logger.NewNop(), false)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("hi"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "hi" {
		t.Errorf("Log() passthrough = %d %q", rec.Code, rec.Body.String())
	}
}
