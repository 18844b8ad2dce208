package inertia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// ssrPayload is the render service's response: head lines and body
// markup to splice into the shell verbatim.
type ssrPayload struct {
	Head []string `json:"head"`
	Body string   `json:"body"`
}

// httpClient returns the process-wide SSR client, created lazily on
// first use and retained until Close.
func (a *Adapter) httpClient() *http.Client {
	a.clientOnce.Do(func() {
		if a.client == nil {
			a.client = &http.Client{}
		}
	})
	return a.client
}

// ssrRender asks the render service to pre-render the page. The wire
// contract is POST {ssrURL}/render with the page JSON re-encoded as a
// JSON string. Every failure mode - marshalling, transport, a non-2xx
// status, an undecodable body - comes back as an error; the caller
// treats any error as the signal to fall back to classic rendering, so
// nothing here may panic or write a response.
func (a *Adapter) ssrRender(ctx context.Context, pageJSON []byte) (*ssrPayload, error) {
	body, err := json.Marshal(string(pageJSON))
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.SSRURL+"/render", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("transport: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("status: %s", resp.Status)
	}

	var payload ssrPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &payload, nil
}
