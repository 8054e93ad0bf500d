package rc5

import (
	"bytes"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	for _, size := range []int{1, 8, 16, 32, 255} {
		key := make([]byte, size)
		for i := range key {
			key[i] = byte(i * 3)
		}
		cipher, err := NewRC5(key)
		if err != nil {
			t.Fatalf("key size %d rejected: %v", size, err)
		}

		block := []byte("0123456789abcdef")
		encrypted, err := cipher.Encrypt(block)
		if err != nil {
			t.Fatalf("key size %d: encrypt failed: %v", size, err)
		}
		if bytes.Equal(encrypted, block) {
			t.Fatalf("key size %d: ciphertext equals plaintext", size)
		}
		decrypted, err := cipher.Decrypt(encrypted)
		if err != nil {
			t.Fatalf("key size %d: decrypt failed: %v", size, err)
		}
		if !bytes.Equal(decrypted, block) {
			t.Fatalf("key size %d: round trip mismatch", size)
		}
	}
}

func TestKeyValidation(t *testing.T) {
	if _, err := NewRC5(nil); err == nil {
		t.Fatal("empty key must be rejected")
	}
	if _, err := NewRC5(make([]byte, 256)); err == nil {
		t.Fatal("oversized key must be rejected")
	}
}

func TestRekeyChangesOutput(t *testing.T) {
	cipher, err := NewRC5([]byte("first key"))
	if err != nil {
		t.Fatalf("cannot create cipher: %v", err)
	}
	block := []byte("0123456789abcdef")
	before, err := cipher.Encrypt(block)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}

	if err := cipher.SetKey([]byte("second key")); err != nil {
		t.Fatalf("rekey failed: %v", err)
	}
	after, err := cipher.Encrypt(block)
	if err != nil {
		t.Fatalf("encrypt after rekey failed: %v", err)
	}
	if bytes.Equal(before, after) {
		t.Fatal("rekeying must change the ciphertext")
	}
}

func TestBlockLengthValidation(t *testing.T) {
	cipher, err := NewRC5([]byte("some key"))
	if err != nil {
		t.Fatalf("cannot create cipher: %v", err)
	}
	if _, err := cipher.Encrypt(make([]byte, 8)); err == nil {
		t.Fatal("short block must be rejected")
	}
	if _, err := cipher.Decrypt(make([]byte, 24)); err == nil {
		t.Fatal("long block must be rejected")
	}
}
