package inertia

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/a-h/templ"
)

// View carries everything the root template needs to produce a document
// response. The adapter builds one per document render; templates treat
// it as read-only.
type View struct {
	Environment  string
	DevServerURL string
	React        bool
	SSR          bool
	SSRHead      []string
	SSRBody      string
	// Data is the page JSON for the mount element. Empty on SSR
	// responses, which carry the page state inside SSRBody instead.
	Data     string
	JSFile   string
	CSSFiles []string
}

// Head returns the markup for the document head: the Vite dev-server
// client (plus the React refresh preamble when React is set) in
// development, the SSR head lines verbatim when SSR rendered the page,
// and a stylesheet link per resolved CSS file.
func Head(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var fragments []string

		if v.Environment == EnvDevelopment {
			if v.React {
				fragments = append(fragments, reactRefreshPreamble(v.DevServerURL))
			}
			fragments = append(fragments,
				fmt.Sprintf(`<script type="module" src="%s/@vite/client"></script>`, v.DevServerURL))
		}

		if v.SSR {
			fragments = append(fragments, v.SSRHead...)
		}

		for _, css := range v.CSSFiles {
			fragments = append(fragments,
				fmt.Sprintf(`<link rel="stylesheet" href="%s">`, html.EscapeString(css)))
		}

		_, err := io.WriteString(w, strings.Join(fragments, "\n"))
		return err
	})
}

// Body returns the markup for the document body: the SSR body verbatim,
// or the mount element with the page JSON in its data-page attribute,
// followed by the entry script tag. The page JSON is HTML-escaped into
// the attribute so embedded quotes cannot break out of it.
func Body(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var fragments []string

		if v.SSR {
			fragments = append(fragments, v.SSRBody)
		} else {
			fragments = append(fragments,
				fmt.Sprintf(`<div id="app" data-page="%s"></div>`, html.EscapeString(v.Data)))
		}

		fragments = append(fragments,
			fmt.Sprintf(`<script type="module" src="%s"></script>`, v.JSFile))

		_, err := io.WriteString(w, strings.Join(fragments, "\n"))
		return err
	})
}

func reactRefreshPreamble(devURL string) string {
	return fmt.Sprintf(`<script type="module">
  import RefreshRuntime from '%s/@react-refresh'
  RefreshRuntime.injectIntoGlobalHook(window)
  window.$RefreshReg$ = () => {}
  window.$RefreshSig$ = () => (type) => type
  window.__vite_plugin_react_preamble_installed__ = true
</script>`, devURL)
}

// TemplateRenderer turns a View into the final HTML document. The
// adapter treats it as a black box: view in, markup out.
type TemplateRenderer interface {
	Render(ctx context.Context, w io.Writer, v View) error
}

// TemplLayout adapts a templ layout into a TemplateRenderer. The layout
// receives the View and typically places Head(v) inside <head> and
// Body(v) inside <body>:
//
//	inertia.TemplLayout(func(v inertia.View) templ.Component {
//	    return layout(v) // a generated templ component
//	})
func TemplLayout(layout func(v View) templ.Component) TemplateRenderer {
	return templLayout{layout: layout}
}

type templLayout struct {
	layout func(v View) templ.Component
}

func (t templLayout) Render(ctx context.Context, w io.Writer, v View) error {
	return t.layout(v).Render(ctx, w)
}

// HTMLTemplateFile is a TemplateRenderer over a root template file,
// parsed once on first use with html/template. The template receives
// the View as its data and two funcs that emit the protocol markup:
//
//	<head>
//	  {{ inertiaHead . }}
//	</head>
//	<body>
//	  {{ inertiaBody . }}
//	</body>
func HTMLTemplateFile(path string) TemplateRenderer {
	return &htmlTemplateFile{path: path}
}

type htmlTemplateFile struct {
	path string
	once sync.Once
	tmpl *template.Template
	err  error
}

func (h *htmlTemplateFile) Render(ctx context.Context, w io.Writer, v View) error {
	h.once.Do(func() {
		h.tmpl, h.err = template.New(templateName(h.path)).Funcs(template.FuncMap{
			"inertiaHead": func(v View) (template.HTML, error) {
				return renderFragment(Head(v))
			},
			"inertiaBody": func(v View) (template.HTML, error) {
				return renderFragment(Body(v))
			},
		}).ParseFiles(h.path)
	})
	if h.err != nil {
		return fmt.Errorf("inertia: root template %s: %w", h.path, h.err)
	}
	return h.tmpl.Execute(w, v)
}

func templateName(p string) string {
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return p
}

// renderFragment runs a templ component to a string. The fragments read
// nothing from the context, so a background context is fine here.
func renderFragment(c templ.Component) (template.HTML, error) {
	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}
