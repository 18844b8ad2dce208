package inertia

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/a-h/templ"
)

// testLayout is a minimal shell for tests, equivalent to a generated
// templ layout.
func testLayout(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<html><head>"); err != nil {
			return err
		}
		if err := Head(v).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</head><body>"); err != nil {
			return err
		}
		if err := Body(v).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// writeManifest drops a Vite manifest into a temp dir and returns its
// path. The shape mirrors a stock `vite build` output.
func writeManifest(t *testing.T, manifest Manifest) string {
	t.Helper()

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func testManifest() Manifest {
	return Manifest{
		"src/main.js": {
			File:    "assets/main-aBc123.js",
			Src:     "src/main.js",
			IsEntry: true,
			CSS:     []string{"assets/main-DeF456.css"},
		},
	}
}

// newTestAdapter builds an adapter with the test layout wired in.
func newTestAdapter(t *testing.T, cfg Config, opts ...Option) *Adapter {
	t.Helper()

	opts = append([]Option{WithTemplates(TemplLayout(testLayout))}, opts...)
	a, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return a
}
