package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/ldsnotes/internal/annotations"
	"github.com/MrSnakeDoc/ldsnotes/internal/config"
	"github.com/MrSnakeDoc/ldsnotes/internal/content"
	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ldsnotes/internal/logger"
	"github.com/MrSnakeDoc/ldsnotes/internal/notes"
	"github.com/MrSnakeDoc/ldsnotes/internal/store"
)

const (
	helaman329 = "/eng/scriptures/bofm/hel/3.p29"

	siteAnnotations = `[
		{
			"id": "a1",
			"type": "highlight",
			"locale": "eng",
			"lastUpdated": "2020-11-08T03:45:02.873Z",
			"tags": ["Faith"],
			"highlight": {"content": [{"uri": "/scriptures/bofm/hel/3.p29", "startOffset": 2, "endOffset": 4, "color": "yellow"}]}
		},
		{
			"id": "a2",
			"type": "journal",
			"locale": "eng",
			"note": {"title": "Thoughts", "content": "On faith"}
		}
	]`

	siteUnknownType = `[{"id": "x1", "type": "sticky", "locale": "eng"}]`

	siteContent = `{
		"/eng/scriptures/bofm/hel/3.p29": {
			"uri": "/eng/scriptures/bofm/hel/3.p29",
			"headline": "Helaman 3",
			"referenceURIDisplayText": "Helaman 3:29",
			"publication": "Book of Mormon",
			"content": [{"id": "p29", "markup": "<p>Yea, we see that whosoever will</p>"}]
		}
	}`
)

// fakeSite serves both upstream APIs. Notes calls need the "secret" cookie.
type fakeSite struct {
	annotations atomic.Value
	calls       int32
}

func (f *fakeSite) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.calls, 1)
	if r.URL.Path == content.Endpoint {
		_, _ = w.Write([]byte(siteContent))
		return
	}
	if c, err := r.Cookie(notes.AuthCookie); err != nil || c.Value != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	switch r.URL.Path {
	case "/notes/api/v2/annotations":
		body, _ := f.annotations.Load().(string)
		_, _ = w.Write([]byte(body))
	case "/notes/api/v2/tags":
		_, _ = w.Write([]byte(`[{"name": "Faith", "annotationCount": 1}]`))
	case "/notes/api/v2/folders":
		_, _ = w.Write([]byte(`[{"id": "f1", "name": "Journal", "annotationCount": 1}]`))
	default:
		http.NotFound(w, r)
	}
}

type testEnv struct {
	handler  http.Handler
	site     *fakeSite
	sessions *store.Memory
}

func newTestEnv(t *testing.T, mutate func(*config.Config, *deps.Deps)) *testEnv {
	t.Helper()

	site := &fakeSite{}
	site.annotations.Store(siteAnnotations)
	upstream := httptest.NewServer(site)
	t.Cleanup(upstream.Close)

	log := logger.NewNop()
	cc := content.NewClient(content.Options{BaseURL: upstream.URL}, log)
	nc := notes.NewClient(notes.Options{BaseURL: upstream.URL}, log)
	sessions := store.NewMemory()

	cfg := &config.Config{ListenPort: ":0", RequestTimeout: 5 * time.Second}
	d := deps.Deps{
		Logger:       log,
		StartTime:    time.Now(),
		Version:      "test",
		Notes:        notes.NewService(nc, annotations.NewAssembler(cc, log), log),
		Content:      cc,
		Sessions:     sessions,
		StoreMode:    config.StoreMemory,
		DefaultToken: "secret",
		SessionTTL:   time.Hour,
		RateBurst:    100,
		RatePerMin:   100,
	}
	if mutate != nil {
		mutate(cfg, &d)
	}
	return &testEnv{handler: NewRouter(cfg, log, d), site: site, sessions: sessions}
}

func (e *testEnv) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz status = %d, want 200", rec.Code)
	}
	var body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.Version != "test" {
		t.Errorf("healthz = %+v, want ok/test", body)
	}
}

func TestReadyz(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /readyz status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sessions":0`) {
		t.Errorf("readyz body = %s, want a session count", rec.Body.String())
	}

	restricted := newTestEnv(t, func(_ *config.Config, d *deps.Deps) {
		d.AllowedCIDRS = []string{"10.0.0.0/8"}
	})
	if rec := restricted.do(http.MethodGet, "/readyz", "", nil); rec.Code != http.StatusForbidden {
		t.Errorf("GET /readyz from outside the allowlist = %d, want 403", rec.Code)
	}
}

func TestAnnotationsJSON(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/annotations?type=highlight,journal&count=2", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d annotations, want 2", len(got))
	}
	if got[0]["highlighted_text"] != "we see that" {
		t.Errorf("highlighted_text = %v, want %q", got[0]["highlighted_text"], "we see that")
	}
	if got[1]["title"] != "Thoughts" {
		t.Errorf("title = %v, want Thoughts", got[1]["title"])
	}
}

func TestAnnotationsMarkdown(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/annotations/markdown?wrap=**", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("Content-Type = %q, want text/markdown", ct)
	}
	want := "Yea, **we see that** whosoever will\n\n---\n\n# Thoughts\n\nOn faith"
	if rec.Body.String() != want {
		t.Errorf("body = %q, want %q", rec.Body.String(), want)
	}
}

func TestAnnotationErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		headers map[string]string
		setup   func(*testEnv)
		want    int
	}{
		{name: "invalid type filter", target: "/api/annotations?type=sticky", want: http.StatusBadRequest},
		{name: "bad start", target: "/api/annotations?start=abc", want: http.StatusBadRequest},
		{name: "negative count", target: "/api/annotations?count=-1", want: http.StatusBadRequest},
		{name: "unknown session", target: "/api/annotations", headers: map[string]string{"X-Session-Id": "nope"}, want: http.StatusUnauthorized},
		{name: "unknown folder", target: "/api/annotations?folder=Missing", want: http.StatusNotFound},
		{
			name:   "unknown record type",
			target: "/api/annotations",
			setup:  func(e *testEnv) { e.site.annotations.Store(siteUnknownType) },
			want:   http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			if tt.setup != nil {
				tt.setup(env)
			}
			rec := env.do(http.MethodGet, tt.target, "", tt.headers)
			if rec.Code != tt.want {
				t.Errorf("GET %s status = %d, want %d (body %s)", tt.target, rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestInvalidTypeMakesNoUpstreamCall(t *testing.T) {
	env := newTestEnv(t, nil)
	env.do(http.MethodGet, "/api/annotations?type=sticky", "", nil)
	if n := atomic.LoadInt32(&env.site.calls); n != 0 {
		t.Errorf("upstream calls = %d, want 0", n)
	}
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t, func(_ *config.Config, d *deps.Deps) {
		d.DefaultToken = ""
		d.AllowedHosts = []string{"notes.local"}
	})
	host := map[string]string{"Host": "notes.local:8080"}

	if rec := env.do(http.MethodGet, "/api/tags", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("GET /api/tags without token = %d, want 401", rec.Code)
	}

	if rec := env.do(http.MethodPost, "/api/session", `{"token":"secret"}`, nil); rec.Code != http.StatusForbidden {
		t.Errorf("POST /api/session from another host = %d, want 403", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"token":"  "}`))
	req.Host = "notes.local"
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /api/session with blank token = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"token":"secret"}`))
	req.Host = host["Host"]
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/session = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.SessionID == "" {
		t.Fatalf("decode session: %v (body %s)", err, rec.Body.String())
	}

	session := map[string]string{"X-Session-Id": created.SessionID}
	rec = env.do(http.MethodGet, "/api/tags", "", session)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/tags with session = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"Faith"`) {
		t.Errorf("tags body = %s, want Faith", rec.Body.String())
	}
	if rec := env.do(http.MethodGet, "/api/folders", "", session); rec.Code != http.StatusOK {
		t.Errorf("GET /api/folders with session = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	req.Host = "notes.local"
	req.Header.Set("X-Session-Id", created.SessionID)
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE /api/session = %d, want 204", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/tags", "", session); rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/tags after delete = %d, want 401", rec.Code)
	}
}

func TestContent(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(http.MethodGet, "/api/content?uri="+helaman329, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var got []content.Content
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Yea, we see that whosoever will" || got[0].PStart != 29 {
		t.Errorf("content = %+v", got)
	}

	if rec := env.do(http.MethodGet, "/api/content", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("GET /api/content without uri = %d, want 400", rec.Code)
	}
	if rec := env.do(http.MethodGet, "/api/content?uri=/eng/missing", "", nil); rec.Code != http.StatusBadGateway {
		t.Errorf("GET /api/content for missing uri = %d, want 502", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(_ *config.Config, d *deps.Deps) {
		d.RateBurst = 2
		d.RatePerMin = 1
	})

	for i := 0; i < 2; i++ {
		if rec := env.do(http.MethodGet, "/api/tags", "", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want 200", i+1, rec.Code)
		}
	}
	rec := env.do(http.MethodGet, "/api/tags", "", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}

	if rec := env.do(http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Errorf("GET /healthz outside /api = %d, want 200", rec.Code)
	}
}
