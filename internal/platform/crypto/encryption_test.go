package crypto

import (
	"bytes"
	"strings"
	"testing"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestNewRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "too short", key: "short"},
		{name: "31 bytes raw", key: strings.Repeat("a", 31)},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.key); err == nil {
				t.Fatalf("expected error for key %q", tc.key)
			}
		})
	}
}

func TestNewAcceptsKeyEncodings(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "raw 32 bytes", key: testKey},
		{name: "hex 64 chars", key: "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.key); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	plain := []byte(`{"submissionType":"employee"}`)
	ciphertext, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Contains(ciphertext, plain) {
		t.Fatal("ciphertext contains plaintext")
	}

	decrypted, err := svc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, plain) {
		t.Fatalf("round trip mismatch: got %q", decrypted)
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	first, err := svc.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	second, err := svc.Encrypt([]byte("same input"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if bytes.Equal(first, second) {
		t.Fatal("two encryptions of the same input produced identical ciphertext")
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	other, err := New("ffffffffffffffffffffffffffffffff")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ciphertext, err := svc.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := other.Decrypt(ciphertext); err == nil {
		t.Fatal("expected decryption with wrong key to fail")
	}
}

func TestDecryptTamperedCiphertextFails(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ciphertext, err := svc.Encrypt([]byte("secret"))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	ciphertext[len(ciphertext)-1] ^= 0x01
	if _, err := svc.Decrypt(ciphertext); err == nil {
		t.Fatal("expected decryption of tampered ciphertext to fail")
	}

	if _, err := svc.Decrypt([]byte("short")); err == nil {
		t.Fatal("expected too-short ciphertext to fail")
	}
}

func TestEmptyInputIsPassedThrough(t *testing.T) {
	svc, err := New(testKey)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if out, err := svc.Encrypt(nil); err != nil || out != nil {
		t.Fatalf("Encrypt(nil) = %v, %v", out, err)
	}
	if out, err := svc.Decrypt(nil); err != nil || out != nil {
		t.Fatalf("Decrypt(nil) = %v, %v", out, err)
	}
}
