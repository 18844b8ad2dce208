package inertia

import (
	"net/http"
	"strings"
)

// Protocol headers. All are case-insensitive on the wire; constants use
// the canonical form.
const (
	// HeaderInertia marks a protocol request (client expects JSON).
	HeaderInertia = "X-Inertia"
	// HeaderVersion carries the client's known asset version.
	HeaderVersion = "X-Inertia-Version"
	// HeaderLocation instructs the client to do a hard navigation.
	HeaderLocation = "X-Inertia-Location"
	// HeaderPartialData lists the prop keys a partial reload wants.
	HeaderPartialData = "X-Inertia-Partial-Data"
	// HeaderPartialComponent names the component a partial reload targets.
	HeaderPartialComponent = "X-Inertia-Partial-Component"
)

// IsInertiaRequest returns true if the request carries the protocol
// marker header, meaning the client wants a JSON page object rather
// than an HTML document.
func IsInertiaRequest(r *http.Request) bool {
	return len(r.Header.Values(HeaderInertia)) > 0
}

// classification is the pure outcome of inspecting a request's protocol
// headers against the component about to be rendered.
type classification struct {
	IsInertia   bool
	IsPartial   bool
	PartialKeys []string
}

// classify inspects the protocol headers. A render is partial only when
// the partial-data header is present AND the partial-component header
// names the component being rendered; a partial request aimed at a
// different component is served as a full render.
func classify(h http.Header, component string) classification {
	c := classification{
		IsInertia:   len(h.Values(HeaderInertia)) > 0,
		PartialKeys: partialKeys(h),
	}
	c.IsPartial = len(h.Values(HeaderPartialData)) > 0 &&
		h.Get(HeaderPartialComponent) == component
	return c
}

// partialKeys returns the comma-split partial-data header, nil if absent.
func partialKeys(h http.Header) []string {
	raw := h.Get(HeaderPartialData)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
