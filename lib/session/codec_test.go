package session

import (
	"errors"
	"strings"
	"testing"
)

var testKey = []byte("test-key-for-session-codec")

func TestCodecSignedRoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey)
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}

	values := map[string]any{
		"_messages": []any{map[string]any{"message": "saved", "category": "success"}},
		"count":     int64(3),
	}

	encoded, err := codec.Encode(values, false)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(encoded, ".") {
		t.Error("signed encoding should contain a payload.signature separator")
	}

	decoded, err := codec.Decode(encoded, false)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if decoded["count"] != int64(3) {
		t.Errorf("decoded count = %v, want 3", decoded["count"])
	}
	msgs, ok := decoded["_messages"].([]any)
	if !ok || len(msgs) != 1 {
		t.Fatalf("decoded _messages = %#v, want one entry", decoded["_messages"])
	}
}

func TestCodecRejectsTamperedPayload(t *testing.T) {
	codec, err := NewCodec(testKey)
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}

	encoded, err := codec.Encode(map[string]any{"user": "alice"}, false)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	// Flip a character in the payload half.
	tampered := "A" + encoded[1:]
	if tampered == encoded {
		tampered = "B" + encoded[1:]
	}

	if _, err := codec.Decode(tampered, false); err == nil {
		t.Fatal("Decode() should reject a tampered payload")
	}
}

func TestCodecRejectsMissingSignature(t *testing.T) {
	codec, err := NewCodec(testKey)
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}

	_, err = codec.Decode("no-separator-here", false)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Decode() error = %v, want ErrInvalidFormat", err)
	}
}

func TestCodecEncryptedRoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey)
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}

	values := map[string]any{"secret": "s3cr3t"}
	encoded, err := codec.Encode(values, true)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if strings.Contains(encoded, "s3cr3t") {
		t.Error("encrypted encoding should not expose plaintext")
	}

	decoded, err := codec.Decode(encoded, true)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if decoded["secret"] != "s3cr3t" {
		t.Errorf("decoded secret = %v, want s3cr3t", decoded["secret"])
	}
}

func TestCodecEncryptedRejectsGarbage(t *testing.T) {
	codec, err := NewCodec(testKey)
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}

	if _, err := codec.Decode("bm90LWEtcmVhbC1jaXBoZXJ0ZXh0LWF0LWFsbC1ub3BlLW5vcGU", true); err == nil {
		t.Fatal("Decode() should reject garbage ciphertext")
	}
}

func TestCodecKeysAreIndependent(t *testing.T) {
	a, err := NewCodec([]byte("key-a"))
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}
	b, err := NewCodec([]byte("key-b"))
	if err != nil {
		t.Fatalf("NewCodec() error: %v", err)
	}

	encoded, err := a.Encode(map[string]any{"v": int64(1)}, false)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	if _, err := b.Decode(encoded, false); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decode() with wrong key error = %v, want ErrSignatureInvalid", err)
	}
}
