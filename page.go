package inertia

// Page is the wire payload the Inertia client consumes: serialized as
// the body of protocol JSON responses, and embedded in the mount
// element's data-page attribute on document responses. Version always
// equals the adapter's configured version.
type Page struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props"`
	URL       string         `json:"url"`
	Version   string         `json:"version"`
}
