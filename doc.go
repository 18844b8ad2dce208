// Package inertia is a server-side adapter for the Inertia.js protocol,
// letting a plain net/http backend drive a client-side single-page
// application without exposing a general JSON API.
//
// Inertia clients send two kinds of requests: normal browser navigations
// and protocol requests marked with the X-Inertia header. The adapter
// answers the first with a full HTML document (the "shell") and the
// second with a JSON page object. The same handler code serves both:
//
//	func index(w http.ResponseWriter, r *http.Request) {
//	    i := inertia.MustFromContext(r.Context())
//	    i.Render(w, "IndexPage", inertia.Props{
//	        "message": "hello from index",
//	    })
//	}
//
// # Setup
//
// Construct one Adapter per process and mount its middleware. The
// middleware binds a per-request engine into the request context, runs
// the asset-version guard before your handler, and answers stale clients
// with a 409 that forces a full reload:
//
//	adapter, err := inertia.New(inertia.Config{
//	    Environment: inertia.EnvProduction,
//	    Version:     "af3c9b",
//	})
//	defer adapter.Close()
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("/", index)
//	http.ListenAndServe(":8080", adapter.Middleware(mux))
//
// # Shared and lazy props
//
// Share merges props from middleware or earlier code into every render
// in the same request. Lazy wraps an expensive producer that only runs
// when a partial reload asks for it by name:
//
//	i.Share(inertia.Props{"auth": currentUser(r)})
//	i.Render(w, "Dashboard", inertia.Props{
//	    "stats": inertia.Lazy(func() any { return expensiveStats() }),
//	})
//
// On a full render lazy props are dropped; on a partial reload
// (X-Inertia-Partial-Data listing "stats" for this component) only the
// requested keys are computed and returned.
//
// # Assets
//
// In development the entry script is served straight from the Vite dev
// server. In production (or whenever SSR is enabled) asset URLs are
// resolved through the Vite manifest, parsed once per process and cached.
// A manifest that cannot be read, or an entry that is missing, is a
// server error: the page cannot be served without known asset paths.
//
// # Server-side rendering
//
// With SSREnabled the adapter POSTs the page object to the companion
// render service and splices the returned head and body markup into the
// shell. Any SSR failure - network, bad status, malformed body - falls
// back to classic client-side rendering and is logged, never surfaced to
// the user.
//
// # Flash data
//
// Flash messages and errors are one-shot values kept in a session store
// (see lib/session) and merged into the props of the next render, then
// gone:
//
//	i.Flash("Saved!", "success")
//	i.Back(w) // 303 back to the referer; the next render shows the flash
//
// Enable them with UseFlashMessages/UseFlashErrors and wire a session
// store via WithSessions.
package inertia
