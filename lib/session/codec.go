package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec serializes session values for transport in a cookie.
// It supports two modes:
//   - Signed (default): msgpack + base64 + HMAC signature - visible but
//     tamper-proof
//   - Encrypted: AES-256-GCM - fully opaque
type Codec struct {
	key []byte
	gcm cipher.AEAD
}

// NewCodec creates a codec with the given secret key.
// Keys shorter than 32 bytes are stretched with SHA-256.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key[:32])
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{key: key, gcm: gcm}, nil
}

// Encode serializes session values into a cookie-safe string.
// If encrypted is true, the payload is encrypted; otherwise it is signed.
func (c *Codec) Encode(values map[string]any, encrypted bool) (string, error) {
	packed, err := msgpack.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("session: marshal: %w", err)
	}

	if encrypted {
		return c.encrypt(packed)
	}
	return c.sign(packed)
}

// Decode deserializes an encoded string back into session values.
// If encrypted is true, the payload is decrypted; otherwise the
// signature is verified.
func (c *Codec) Decode(encoded string, encrypted bool) (map[string]any, error) {
	var packed []byte
	var err error

	if encrypted {
		packed, err = c.decrypt(encoded)
	} else {
		packed, err = c.verify(encoded)
	}
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := msgpack.Unmarshal(packed, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return values, nil
}

// sign creates a signed (but visible) encoding: base64.signature
func (c *Codec) sign(data []byte) (string, error) {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16]) // 16 bytes = 128 bits
	return b64 + "." + sig, nil
}

// verify verifies and decodes a signed string
func (c *Codec) verify(encoded string) ([]byte, error) {
	parts := strings.SplitN(encoded, ".", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidFormat
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidFormat
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidFormat
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	expected := mac.Sum(nil)[:16]

	if !hmac.Equal(sig, expected) {
		return nil, ErrSignatureInvalid
	}

	return data, nil
}

// encrypt creates an encrypted encoding using AES-256-GCM
func (c *Codec) encrypt(data []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := c.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// decrypt decodes and decrypts an encrypted string
func (c *Codec) decrypt(encoded string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	if len(ciphertext) < c.gcm.NonceSize() {
		return nil, ErrDecryptFailed
	}

	nonce := ciphertext[:c.gcm.NonceSize()]
	ciphertext = ciphertext[c.gcm.NonceSize():]

	plain, err := c.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plain, nil
}
