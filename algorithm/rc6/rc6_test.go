package rc6

import (
	"bytes"
	"testing"
)

// Published RC6-32/20 vectors from the AES submission paper.
func TestPublishedVectors(t *testing.T) {
	cases := []struct {
		name       string
		key        []byte
		plaintext  []byte
		ciphertext []byte
	}{
		{
			name:      "all zero",
			key:       make([]byte, 16),
			plaintext: make([]byte, 16),
			ciphertext: []byte{
				0x8f, 0xc3, 0xa5, 0x36, 0x56, 0xb1, 0xf7, 0x78,
				0xc1, 0x29, 0xdf, 0x4e, 0x98, 0x48, 0xa4, 0x1e,
			},
		},
		{
			name: "128 bit key",
			key: []byte{
				0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef,
				0x01, 0x12, 0x23, 0x34, 0x45, 0x56, 0x67, 0x78,
			},
			plaintext: []byte{
				0x02, 0x13, 0x24, 0x35, 0x46, 0x57, 0x68, 0x79,
				0x8a, 0x9b, 0xac, 0xbd, 0xce, 0xdf, 0xe0, 0xf1,
			},
			ciphertext: []byte{
				0x52, 0x4e, 0x19, 0x2f, 0x47, 0x15, 0xc6, 0x23,
				0x1f, 0x51, 0xf6, 0x36, 0x7e, 0xa4, 0x3f, 0x18,
			},
		},
	}

	for _, tc := range cases {
		cipher, err := NewRC6(tc.key)
		if err != nil {
			t.Fatalf("%s: cannot create cipher: %v", tc.name, err)
		}

		encrypted, err := cipher.Encrypt(tc.plaintext)
		if err != nil {
			t.Fatalf("%s: encrypt failed: %v", tc.name, err)
		}
		if !bytes.Equal(encrypted, tc.ciphertext) {
			t.Fatalf("%s: got % x, want % x", tc.name, encrypted, tc.ciphertext)
		}

		decrypted, err := cipher.Decrypt(encrypted)
		if err != nil {
			t.Fatalf("%s: decrypt failed: %v", tc.name, err)
		}
		if !bytes.Equal(decrypted, tc.plaintext) {
			t.Fatalf("%s: decrypt does not invert encrypt", tc.name)
		}
	}
}

func TestKeySizes(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		key := make([]byte, size)
		for i := range key {
			key[i] = byte(i + 1)
		}
		cipher, err := NewRC6(key)
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

	for _, size := range []int{0, 15, 20, 33} {
		if _, err := NewRC6(make([]byte, size)); err == nil {
			t.Fatalf("key size %d must be rejected", size)
		}
	}
}

func TestBlockLengthValidation(t *testing.T) {
	cipher, err := NewRC6(make([]byte, 16))
	if err != nil {
		t.Fatalf("cannot create cipher: %v", err)
	}
	if _, err := cipher.Encrypt(make([]byte, 15)); err == nil {
		t.Fatal("short block must be rejected")
	}
	if _, err := cipher.Decrypt(make([]byte, 17)); err == nil {
		t.Fatal("long block must be rejected")
	}
}
