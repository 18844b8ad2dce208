package inertia

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSSRRenderWireFormat(t *testing.T) {
	var (
		gotMethod      string
		gotPath        string
		gotContentType string
		gotBody        []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(ssrPayload{
			Head: []string{`<title>Rendered</title>`},
			Body: `<div id="app">server markup</div>`,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{
		SSREnabled:   true,
		SSRURL:       srv.URL,
		ManifestPath: writeManifest(t, testManifest()),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	result := serve(t, a, req, func(i *Inertia, w http.ResponseWriter) {
		i.Render(w, "Page", Props{"n": 1})
	})

	if gotMethod != http.MethodPost || gotPath != "/render" {
		t.Errorf("request = %s %s, want POST /render", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}

	// The body is the page JSON encoded as a JSON string.
	var pageJSON string
	if err := json.Unmarshal(gotBody, &pageJSON); err != nil {
		t.Fatalf("body is not a JSON string: %v", err)
	}
	var page Page
	if err := json.Unmarshal([]byte(pageJSON), &page); err != nil {
		t.Fatalf("inner payload is not a page object: %v", err)
	}
	if page.Component != "Page" {
		t.Errorf("component = %q", page.Component)
	}

	if !result.Contains(`<title>Rendered</title>`) {
		t.Error("head lines not spliced into document")
	}
	if !result.Contains(`<div id="app">server markup</div>`) {
		t.Error("body markup not spliced into document")
	}
	if result.Contains(`data-page=`) {
		t.Error("server-rendered document should not carry the client mount element")
	}
}

func TestSSRProtocolRequestSkipsBridge(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newTestAdapter(t, Config{
		SSREnabled:   true,
		SSRURL:       srv.URL,
		ManifestPath: writeManifest(t, testManifest()),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderInertia, "true")
	result := serve(t, a, req, func(i *Inertia, w http.ResponseWriter) {
		i.Render(w, "Page", nil)
	})

	if called {
		t.Error("bridge must not be consulted for protocol requests")
	}
	if !result.IsJSON() {
		t.Error("protocol request should get JSON")
	}
}

func TestSSRFallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		srv  func() *httptest.Server
	}{
		{
			name: "non-2xx status",
			srv: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "boom", http.StatusInternalServerError)
				}))
			},
		},
		{
			name: "malformed response",
			srv: func() *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					io.WriteString(w, "not json")
				}))
			},
		},
		{
			name: "unreachable",
			srv: func() *httptest.Server {
				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
				srv.Close()
				return srv
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := tt.srv()
			defer srv.Close()

			a := newTestAdapter(t, Config{
				SSREnabled:   true,
				SSRURL:       srv.URL,
				ManifestPath: writeManifest(t, testManifest()),
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			result := serve(t, a, req, func(i *Inertia, w http.ResponseWriter) {
				if err := i.Render(w, "Page", Props{"n": 1}); err != nil {
					t.Fatalf("Render() must not surface bridge failures: %v", err)
				}
			})

			if result.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want 200", result.StatusCode)
			}
			if !result.Contains(`data-page="`) {
				t.Error("fallback document should carry the client mount element")
			}
			if !result.Contains(`src="/assets/main-aBc123.js"`) {
				t.Error("fallback document should reference built assets")
			}
			page, err := result.Page()
			if err != nil {
				t.Fatalf("Page() error: %v", err)
			}
			if page.Props["n"] != float64(1) {
				t.Errorf("n = %v", page.Props["n"])
			}
		})
	}
}
