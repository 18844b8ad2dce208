package inertia

import (
	"errors"
	"fmt"
)

// Sentinel errors for adapter operations.
var (
	ErrFlashDisabled       = errors.New("inertia: flash messages are not enabled")
	ErrFlashErrorsDisabled = errors.New("inertia: flash errors are not enabled")
	ErrNoSessions          = errors.New("inertia: no session store configured")
	ErrNotBound            = errors.New("inertia: request not bound; is the middleware mounted?")
)

// VersionConflictError is returned from Adapter.Bind when the client's
// declared asset version does not match the configured one. The boundary
// layer must answer with 409 and an X-Inertia-Location header carrying
// URL, which makes the client retry as a full navigation.
//
// The conflict is detected before any handler code runs, so a request
// that is about to be retried cannot leave partially-applied side
// effects behind.
type VersionConflictError struct {
	URL string
}

func (e *VersionConflictError) Error() string {
	return "inertia: asset version conflict for " + e.URL
}

// IsVersionConflict checks if err is a version conflict.
func IsVersionConflict(err error) bool {
	var vc *VersionConflictError
	return errors.As(err, &vc)
}

// AssetError is a fatal asset-resolution failure: the manifest could not
// be read or parsed, or the configured entrypoint is missing from it.
// The page cannot be served without known asset paths, so this surfaces
// as a server error and is never retried.
type AssetError struct {
	Manifest string
	Entry    string
	Err      error
}

func (e *AssetError) Error() string {
	if e.Entry != "" {
		return fmt.Sprintf("inertia: manifest %s has no entry %q", e.Manifest, e.Entry)
	}
	return fmt.Sprintf("inertia: manifest %s: %v", e.Manifest, e.Err)
}

func (e *AssetError) Unwrap() error {
	return e.Err
}
