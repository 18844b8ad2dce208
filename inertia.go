package inertia

import (
	"bytes"
	"net/http"

	"github.com/pthm/inertia/lib/session"
)

// Inertia is the per-request protocol engine. All state here - shared
// props, the pending component, resolved assets, the session - is owned
// exclusively by one request and never shared. Instances are created by
// Adapter.Bind and are not safe for concurrent use.
type Inertia struct {
	adapter   *Adapter
	request   *http.Request
	url       string
	component string
	props     Props
	assets    AssetBundle
	session   *session.Session
}

// Share merges props into the request's accumulating prop set. Later
// calls override same-named keys, so middleware can set defaults that
// handlers overwrite. Callable any number of times before Render.
func (i *Inertia) Share(props Props) {
	mergeProps(i.props, props)
}

// ShareProp shares a single prop.
func (i *Inertia) ShareProp(key string, value any) {
	i.props[key] = value
}

// Session returns the request's session, or nil when no store is
// configured.
func (i *Inertia) Session() *session.Session {
	return i.session
}

// Assets returns the asset bundle resolved for this request.
func (i *Inertia) Assets() AssetBundle {
	return i.assets
}

// Render produces the response for component with the given props
// merged over everything shared so far.
//
// Protocol requests get the JSON page object. Otherwise, with SSR
// enabled, the render service is tried once; any failure there is
// logged and absorbed, and the response falls back to classic HTML with
// the page embedded in the mount element. The session is saved before
// anything is written, so flash pops stick.
func (i *Inertia) Render(w http.ResponseWriter, component string, props Props) error {
	i.component = component
	mergeProps(i.props, props)

	c := classify(i.request.Header, component)
	finalProps := buildProps(i.props, c)
	i.popFlash(finalProps)

	page := Page{
		Component: component,
		Props:     finalProps,
		URL:       i.url,
		Version:   i.adapter.cfg.Version,
	}
	pageJSON, err := i.adapter.marshal(page)
	if err != nil {
		return err
	}

	if c.IsInertia {
		return i.writeJSON(w, pageJSON)
	}

	if i.adapter.cfg.SSREnabled {
		payload, err := i.adapter.ssrRender(i.request.Context(), pageJSON)
		if err == nil {
			return i.writeHTML(w, View{
				Environment:  i.adapter.cfg.Environment,
				DevServerURL: i.adapter.cfg.DevServerURL,
				React:        i.adapter.cfg.React,
				SSR:          true,
				SSRHead:      payload.Head,
				SSRBody:      payload.Body,
				JSFile:       i.assets.JSFile,
				CSSFiles:     i.assets.CSSFiles,
			})
		}
		i.adapter.log.Error().Err(err).
			Str("component", component).
			Str("ssr_url", i.adapter.cfg.SSRURL).
			Msg("ssr render failed, falling back to classic rendering")
	}

	return i.writeHTML(w, View{
		Environment:  i.adapter.cfg.Environment,
		DevServerURL: i.adapter.cfg.DevServerURL,
		React:        i.adapter.cfg.React,
		Data:         string(pageJSON),
		JSFile:       i.assets.JSFile,
		CSSFiles:     i.assets.CSSFiles,
	})
}

func (i *Inertia) writeJSON(w http.ResponseWriter, pageJSON []byte) error {
	i.saveSession(w)
	w.Header().Set(HeaderInertia, "true")
	w.Header().Set("Vary", "Accept")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(pageJSON)
	return err
}

func (i *Inertia) writeHTML(w http.ResponseWriter, v View) error {
	// Render to a buffer first so a template failure can still become a
	// clean error instead of a half-written 200.
	var buf bytes.Buffer
	if err := i.adapter.templates.Render(i.request.Context(), &buf, v); err != nil {
		return err
	}

	i.saveSession(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(buf.Bytes())
	return err
}

// saveSession persists the session while response headers are still
// open. A failed save loses at most one-shot flash data, so it is
// logged rather than failing the response.
func (i *Inertia) saveSession(w http.ResponseWriter) {
	if i.session == nil || !i.session.Dirty() {
		return
	}
	if err := i.adapter.sessions.Save(w, i.request, i.session); err != nil {
		i.adapter.log.Warn().Err(err).Msg("session save failed")
	}
}
