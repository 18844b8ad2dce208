package inertia

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pthm/inertia/lib/session"
)

// Adapter holds the process-wide pieces of the protocol engine: the
// immutable config, the manifest cache, the shared SSR client, the
// session store, and the template renderer. Construct one per process
// and create per-request engines through Middleware or Bind.
type Adapter struct {
	cfg       Config
	log       zerolog.Logger
	sessions  session.Store
	templates TemplateRenderer
	marshal   func(any) ([]byte, error)
	manifests *manifestCache

	clientOnce sync.Once
	client     *http.Client
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the adapter's logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(a *Adapter) { a.log = log }
}

// WithSessions wires a session store. Required for flash data.
func WithSessions(store session.Store) Option {
	return func(a *Adapter) { a.sessions = store }
}

// WithTemplates overrides the template renderer. The default renders
// the Config.RootTemplate file with html/template.
func WithTemplates(t TemplateRenderer) Option {
	return func(a *Adapter) { a.templates = t }
}

// WithHTTPClient supplies the shared SSR client. The adapter itself
// enforces no timeout; configure one here.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.client = c }
}

// WithMarshal overrides JSON encoding of page objects, for apps with
// custom value types.
func WithMarshal(fn func(any) ([]byte, error)) Option {
	return func(a *Adapter) { a.marshal = fn }
}

// New creates an Adapter from cfg with defaults applied.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Adapter{
		cfg:       cfg,
		log:       zerolog.Nop(),
		marshal:   json.Marshal,
		manifests: newManifestCache(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.templates == nil {
		a.templates = HTMLTemplateFile(cfg.RootTemplate)
	}
	return a, nil
}

// Config returns the adapter's effective configuration.
func (a *Adapter) Config() Config {
	return a.cfg
}

// Close releases the shared SSR client's idle connections. Call on
// shutdown.
func (a *Adapter) Close() error {
	if a.client != nil {
		a.client.CloseIdleConnections()
	}
	return nil
}

// Bind creates the per-request engine. It runs the version guard first:
// a client declaring a stale asset version gets a *VersionConflictError
// carrying the requested URL, before any handler logic can run, so the
// retried navigation never sees half-applied side effects. Asset
// resolution failures surface as *AssetError.
//
// Most applications mount Middleware instead of calling Bind directly.
func (a *Adapter) Bind(r *http.Request) (*Inertia, error) {
	url := requestURL(r)

	if v := r.Header.Get(HeaderVersion); v != "" && v != a.cfg.Version {
		return nil, &VersionConflictError{URL: url}
	}

	assets, err := resolveAssets(a.cfg, a.manifests)
	if err != nil {
		return nil, err
	}

	i := &Inertia{
		adapter: a,
		request: r,
		url:     url,
		props:   make(Props),
		assets:  assets,
	}

	if a.sessions != nil {
		sess, err := a.sessions.Load(r)
		if err != nil {
			return nil, err
		}
		i.session = sess
	}
	return i, nil
}

// Middleware binds a per-request engine into the request context and
// translates protocol errors at the boundary: version conflicts become
// 409 responses with the forced-navigation header, asset failures
// become server errors. Handlers downstream retrieve the engine with
// FromContext or MustFromContext.
func (a *Adapter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		i, err := a.Bind(r)
		if err != nil {
			var vc *VersionConflictError
			if errors.As(err, &vc) {
				w.Header().Set(HeaderLocation, vc.URL)
				w.WriteHeader(http.StatusConflict)
				return
			}
			a.log.Error().Err(err).Str("url", requestURL(r)).Msg("inertia bind failed")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), i)))
	})
}

type contextKey struct{}

// NewContext returns a context carrying a per-request engine. Used by
// framework integrations that run Bind themselves.
func NewContext(ctx context.Context, i *Inertia) context.Context {
	return context.WithValue(ctx, contextKey{}, i)
}

// FromContext retrieves the per-request engine bound by Middleware.
func FromContext(ctx context.Context) (*Inertia, bool) {
	i, ok := ctx.Value(contextKey{}).(*Inertia)
	return i, ok
}

// MustFromContext is FromContext that panics when no engine is bound.
// Use in handlers that are always mounted behind the middleware.
func MustFromContext(ctx context.Context) *Inertia {
	i, ok := FromContext(ctx)
	if !ok {
		panic(ErrNotBound)
	}
	return i
}

// requestURL reconstructs the full URL of an inbound request.
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
