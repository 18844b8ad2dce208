package inertia

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
)

// RenderResult holds a recorded response for assertions in tests.
type RenderResult struct {
	Body       string
	StatusCode int
	Headers    http.Header
}

// ResultOf converts a recorded response into a RenderResult.
func ResultOf(rec *httptest.ResponseRecorder) *RenderResult {
	return &RenderResult{
		Body:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Result().Header,
	}
}

// Contains reports whether the response body contains s.
func (r *RenderResult) Contains(s string) bool {
	return strings.Contains(r.Body, s)
}

// IsJSON reports whether the response is a protocol JSON response.
func (r *RenderResult) IsJSON() bool {
	return r.Headers.Get(HeaderInertia) == "true" &&
		strings.HasPrefix(r.Headers.Get("Content-Type"), "application/json")
}

var dataPageRe = regexp.MustCompile(`data-page="([^"]*)"`)

// Page extracts the page object from the response: directly from the
// body of a JSON response, or out of the mount element's data-page
// attribute of an HTML response.
func (r *RenderResult) Page() (*Page, error) {
	raw := r.Body
	if !r.IsJSON() {
		m := dataPageRe.FindStringSubmatch(r.Body)
		if m == nil {
			return nil, fmt.Errorf("inertia: no data-page attribute in response body")
		}
		raw = html.UnescapeString(m[1])
	}

	var page Page
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		return nil, fmt.Errorf("inertia: decode page: %w", err)
	}
	return &page, nil
}
