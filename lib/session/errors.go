package session

import "errors"

// Sentinel errors for session codec and store operations.
var (
	ErrInvalidFormat    = errors.New("session: invalid payload format")
	ErrSignatureInvalid = errors.New("session: signature verification failed")
	ErrDecryptFailed    = errors.New("session: payload decryption failed")
)
