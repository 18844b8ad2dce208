package inertia

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func renderComponent(t *testing.T, c templ.Component) string {
	t.Helper()

	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestHeadDevelopment(t *testing.T) {
	out := renderComponent(t, Head(View{
		Environment:  EnvDevelopment,
		DevServerURL: "http://localhost:5173",
	}))

	if !strings.Contains(out, `src="http://localhost:5173/@vite/client"`) {
		t.Error("missing vite client script")
	}
	if strings.Contains(out, "@react-refresh") {
		t.Error("react preamble must be opt-in")
	}
}

func TestHeadDevelopmentReact(t *testing.T) {
	out := renderComponent(t, Head(View{
		Environment:  EnvDevelopment,
		DevServerURL: "http://localhost:5173",
		React:        true,
	}))

	if !strings.Contains(out, "http://localhost:5173/@react-refresh") {
		t.Error("missing react refresh preamble")
	}
	if !strings.Contains(out, "__vite_plugin_react_preamble_installed__") {
		t.Error("preamble should set the installed flag")
	}
	// The preamble must run before the vite client.
	if strings.Index(out, "@react-refresh") > strings.Index(out, "@vite/client") {
		t.Error("react preamble must precede the vite client")
	}
}

func TestHeadProduction(t *testing.T) {
	out := renderComponent(t, Head(View{
		Environment: EnvProduction,
		CSSFiles:    []string{"/assets/main-DeF456.css", "/assets/vendor-XyZ789.css"},
	}))

	if strings.Contains(out, "@vite/client") {
		t.Error("vite client must not appear in production")
	}
	if !strings.Contains(out, `<link rel="stylesheet" href="/assets/main-DeF456.css">`) {
		t.Error("missing first stylesheet")
	}
	if !strings.Contains(out, `<link rel="stylesheet" href="/assets/vendor-XyZ789.css">`) {
		t.Error("missing second stylesheet")
	}
}

func TestHeadSSRSplicesVerbatim(t *testing.T) {
	out := renderComponent(t, Head(View{
		Environment: EnvProduction,
		SSR:         true,
		SSRHead:     []string{`<title>From SSR</title>`, `<meta name="description" content="x">`},
	}))

	if !strings.Contains(out, `<title>From SSR</title>`) {
		t.Error("missing SSR title")
	}
	if !strings.Contains(out, `<meta name="description" content="x">`) {
		t.Error("missing SSR meta")
	}
}

func TestBodyMountElementEscaping(t *testing.T) {
	out := renderComponent(t, Body(View{
		Data:   `{"component":"Page","props":{"q":"a \"b\" <c>"}}`,
		JSFile: "/assets/main-aBc123.js",
	}))

	if !strings.Contains(out, `<div id="app" data-page="`) {
		t.Fatal("missing mount element")
	}
	if strings.Contains(out, `data-page="{"`) {
		t.Error("raw quotes leaked into the attribute")
	}
	if !strings.Contains(out, "&#34;component&#34;") {
		t.Error("page JSON should be HTML-escaped into the attribute")
	}
	if !strings.Contains(out, `<script type="module" src="/assets/main-aBc123.js"></script>`) {
		t.Error("missing entry script")
	}
}

func TestBodySSRReplacesMount(t *testing.T) {
	out := renderComponent(t, Body(View{
		SSR:     true,
		SSRBody: `<div id="app">rendered</div>`,
		JSFile:  "/assets/main-aBc123.js",
	}))

	if !strings.Contains(out, `<div id="app">rendered</div>`) {
		t.Error("missing SSR body")
	}
	if strings.Contains(out, "data-page") {
		t.Error("SSR body should replace the mount element")
	}
}

func TestHTMLTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	doc := `<!DOCTYPE html>
<html>
<head>{{ inertiaHead . }}</head>
<body>{{ inertiaBody . }}</body>
</html>`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	renderer := HTMLTemplateFile(path)
	var sb strings.Builder
	err := renderer.Render(context.Background(), &sb, View{
		Environment: EnvProduction,
		Data:        `{"component":"Page"}`,
		JSFile:      "/assets/main-aBc123.js",
		CSSFiles:    []string{"/assets/main-DeF456.css"},
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := sb.String()
	if !strings.Contains(out, `<link rel="stylesheet" href="/assets/main-DeF456.css">`) {
		t.Error("missing stylesheet from inertiaHead")
	}
	if !strings.Contains(out, `data-page="`) {
		t.Error("missing mount element from inertiaBody")
	}
	if !strings.Contains(out, `src="/assets/main-aBc123.js"`) {
		t.Error("missing entry script from inertiaBody")
	}
}

func TestHTMLTemplateFileMissing(t *testing.T) {
	renderer := HTMLTemplateFile(filepath.Join(t.TempDir(), "nope.html"))
	err := renderer.Render(context.Background(), io.Discard, View{})
	if err == nil {
		t.Fatal("expected an error for a missing template file")
	}
}
