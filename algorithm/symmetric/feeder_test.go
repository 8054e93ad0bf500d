package symmetric

import (
	"bytes"
	"errors"
	"testing"

	"CryptoVault/algorithm/rc6"
)

var (
	testKey = []byte("0123456789ABCDEF0123456789ABCDEF")
	testIV  = []byte("ABCDEF0123456789")
)

func newTestCipher(t *testing.T) BlockCipher {
	t.Helper()
	cipher, err := rc6.NewRC6(testKey)
	if err != nil {
		t.Fatalf("cannot create rc6: %v", err)
	}
	return cipher
}

func newTestContext(t *testing.T, mode CipherMode, padding PaddingOption, segmentSize int) *CipherContext {
	t.Helper()
	ctx, err := NewCipherContext(testKey, newTestCipher(t), mode, padding, testIV, segmentSize)
	if err != nil {
		t.Fatalf("cannot create cipher context: %v", err)
	}
	return ctx
}

func sequence(length int) []byte {
	data := make([]byte, length)
	for i := range data {
		data[i] = byte(i * 7)
	}
	return data
}

func TestBlockRoundTripDefaultPadding(t *testing.T) {
	for _, mode := range []CipherMode{ECB, CBC} {
		ctx := newTestContext(t, mode, PaddingDefault, BlockSize)
		for length := 1; length <= 100; length++ {
			plaintext := sequence(length)

			ciphertext, err := ctx.Encrypt(plaintext)
			if err != nil {
				t.Fatalf("mode %d length %d: encrypt failed: %v", mode, length, err)
			}
			want := (length/BlockSize + 1) * BlockSize
			if len(ciphertext) != want {
				t.Fatalf("mode %d length %d: ciphertext length %d, want %d", mode, length, len(ciphertext), want)
			}

			decrypted, err := ctx.Decrypt(ciphertext)
			if err != nil {
				t.Fatalf("mode %d length %d: decrypt failed: %v", mode, length, err)
			}
			if !bytes.Equal(plaintext, decrypted) {
				t.Fatalf("mode %d length %d: round trip mismatch", mode, length)
			}
		}
	}
}

func TestBlockRoundTripCiphertextStealing(t *testing.T) {
	paddings := []PaddingOption{PaddingCS1, PaddingCS2, PaddingCS3}
	for _, mode := range []CipherMode{ECB, CBC} {
		for _, padding := range paddings {
			ctx := newTestContext(t, mode, padding, BlockSize)
			for length := BlockSize; length <= 100; length++ {
				plaintext := sequence(length)

				ciphertext, err := ctx.Encrypt(plaintext)
				if err != nil {
					t.Fatalf("mode %d padding %d length %d: encrypt failed: %v", mode, padding, length, err)
				}
				if len(ciphertext) != length {
					t.Fatalf("mode %d padding %d length %d: ciphertext expanded to %d", mode, padding, length, len(ciphertext))
				}

				decrypted, err := ctx.Decrypt(ciphertext)
				if err != nil {
					t.Fatalf("mode %d padding %d length %d: decrypt failed: %v", mode, padding, length, err)
				}
				if !bytes.Equal(plaintext, decrypted) {
					t.Fatalf("mode %d padding %d length %d: round trip mismatch", mode, padding, length)
				}
			}
		}
	}
}

func TestStealingRejectsShortMessages(t *testing.T) {
	for _, padding := range []PaddingOption{PaddingCS1, PaddingCS2, PaddingCS3} {
		ctx := newTestContext(t, CBC, padding, BlockSize)
		if _, err := ctx.Encrypt(sequence(10)); !errors.Is(err, ErrInvalidFinalLength) {
			t.Fatalf("padding %d: want ErrInvalidFinalLength for short message, got %v", padding, err)
		}
	}
}

func TestNonePaddingRequiresFullBlock(t *testing.T) {
	ctx := newTestContext(t, ECB, PaddingNone, BlockSize)

	ciphertext, err := ctx.Encrypt(sequence(32))
	if err != nil {
		t.Fatalf("aligned encrypt failed: %v", err)
	}
	decrypted, err := ctx.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("aligned decrypt failed: %v", err)
	}
	if !bytes.Equal(sequence(32), decrypted) {
		t.Fatal("aligned round trip mismatch")
	}

	if _, err := ctx.Encrypt(sequence(20)); !errors.Is(err, ErrInvalidFinalLength) {
		t.Fatalf("want ErrInvalidFinalLength for unaligned input, got %v", err)
	}
}

func TestUnknownPaddingOption(t *testing.T) {
	ctx := newTestContext(t, CBC, PaddingOption(99), BlockSize)
	if _, err := ctx.Encrypt(sequence(16)); !errors.Is(err, ErrInvalidPaddingOption) {
		t.Fatalf("want ErrInvalidPaddingOption, got %v", err)
	}
}

func TestStealingRejectedForSegmentAndStream(t *testing.T) {
	for _, mode := range []CipherMode{CFB, OFB, CTR} {
		for _, padding := range []PaddingOption{PaddingCS1, PaddingCS2, PaddingCS3} {
			ctx := newTestContext(t, mode, padding, BlockSize)
			if _, err := ctx.Encrypt(sequence(40)); !errors.Is(err, ErrInvalidPaddingOption) {
				t.Fatalf("mode %d padding %d: want ErrInvalidPaddingOption, got %v", mode, padding, err)
			}
		}
	}
	// Segment finalize accepts Default only.
	ctx := newTestContext(t, CFB, PaddingNone, BlockSize)
	if _, err := ctx.Encrypt(sequence(40)); !errors.Is(err, ErrInvalidPaddingOption) {
		t.Fatalf("CFB with PaddingNone: want ErrInvalidPaddingOption, got %v", err)
	}
}

func TestFinalizeOnce(t *testing.T) {
	ctx := newTestContext(t, CBC, PaddingDefault, BlockSize)
	feeder, err := ctx.NewEncrypter()
	if err != nil {
		t.Fatalf("cannot create encrypter: %v", err)
	}

	if _, err := feeder.Feed(sequence(40)); err != nil {
		t.Fatalf("feed failed: %v", err)
	}
	if _, err := feeder.Final(); err != nil {
		t.Fatalf("final failed: %v", err)
	}

	if _, err := feeder.Feed(sequence(8)); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("feed after final: want ErrAlreadyFinalized, got %v", err)
	}
	if _, err := feeder.Final(); !errors.Is(err, ErrAlreadyFinalized) {
		t.Fatalf("second final: want ErrAlreadyFinalized, got %v", err)
	}
}

// Output must not depend on how the input was sliced across Feed calls.
func TestFeedChunkBoundaryIndependence(t *testing.T) {
	plaintext := sequence(53)
	for _, padding := range []PaddingOption{PaddingDefault, PaddingCS1, PaddingCS3} {
		ctx := newTestContext(t, CBC, padding, BlockSize)

		oneShot, err := ctx.Encrypt(plaintext)
		if err != nil {
			t.Fatalf("padding %d: one shot encrypt failed: %v", padding, err)
		}

		feeder, err := ctx.NewEncrypter()
		if err != nil {
			t.Fatalf("padding %d: cannot create encrypter: %v", padding, err)
		}
		var chunked []byte
		for i := range plaintext {
			out, err := feeder.Feed(plaintext[i : i+1])
			if err != nil {
				t.Fatalf("padding %d: feed failed at byte %d: %v", padding, i, err)
			}
			chunked = append(chunked, out...)
		}
		last, err := feeder.Final()
		if err != nil {
			t.Fatalf("padding %d: final failed: %v", padding, err)
		}
		chunked = append(chunked, last...)

		if !bytes.Equal(oneShot, chunked) {
			t.Fatalf("padding %d: byte-at-a-time output differs from one-shot", padding)
		}
	}
}

func TestExampleCBCStealingTwentyBytes(t *testing.T) {
	plaintext := bytes.Repeat([]byte{0x41}, 20)

	ctx := newTestContext(t, CBC, PaddingCS1, BlockSize)
	ciphertext, err := ctx.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if len(ciphertext) != 20 {
		t.Fatalf("ciphertext length %d, want 20", len(ciphertext))
	}
	decrypted, err := ctx.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if !bytes.Equal(plaintext, decrypted) {
		t.Fatal("round trip mismatch")
	}

	padded := newTestContext(t, CBC, PaddingDefault, BlockSize)
	ciphertext, err = padded.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("encrypt with default padding failed: %v", err)
	}
	if len(ciphertext) != 32 {
		t.Fatalf("padded ciphertext length %d, want 32", len(ciphertext))
	}
}
