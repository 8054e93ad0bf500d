package symmetric

import (
	"bytes"
	"testing"
)

// For aligned input no stealing happens: CS1 equals the plain per-unit
// cipher output, CS2 equals CS1, and CS3 differs only by the swap of the
// two trailing units.
func TestAlignedStealingRelations(t *testing.T) {
	for _, length := range []int{32, 48, 64} {
		plaintext := sequence(length)

		for _, mode := range []CipherMode{ECB, CBC} {
			plain, err := newTestContext(t, mode, PaddingNone, BlockSize).Encrypt(plaintext)
			if err != nil {
				t.Fatalf("mode %d length %d: plain encrypt failed: %v", mode, length, err)
			}

			cs1, err := newTestContext(t, mode, PaddingCS1, BlockSize).Encrypt(plaintext)
			if err != nil {
				t.Fatalf("mode %d length %d: CS1 encrypt failed: %v", mode, length, err)
			}
			if !bytes.Equal(plain, cs1) {
				t.Fatalf("mode %d length %d: aligned CS1 output differs from plain mode output", mode, length)
			}

			cs2, err := newTestContext(t, mode, PaddingCS2, BlockSize).Encrypt(plaintext)
			if err != nil {
				t.Fatalf("mode %d length %d: CS2 encrypt failed: %v", mode, length, err)
			}
			if !bytes.Equal(cs1, cs2) {
				t.Fatalf("mode %d length %d: aligned CS2 output differs from CS1", mode, length)
			}

			cs3, err := newTestContext(t, mode, PaddingCS3, BlockSize).Encrypt(plaintext)
			if err != nil {
				t.Fatalf("mode %d length %d: CS3 encrypt failed: %v", mode, length, err)
			}
			cut := length - 2*BlockSize
			swapped := append([]byte(nil), cs1[:cut]...)
			swapped = append(swapped, cs1[cut+BlockSize:]...)
			swapped = append(swapped, cs1[cut:cut+BlockSize]...)
			if !bytes.Equal(swapped, cs3) {
				t.Fatalf("mode %d length %d: aligned CS3 output is not CS1 with trailing units swapped", mode, length)
			}
		}
	}
}

// Two aligned ECB units under CS3 come out independently encrypted, in
// swapped order.
func TestExampleECBThirtyTwoBytesCS3(t *testing.T) {
	plaintext := sequence(32)
	cipher := newTestCipher(t)

	first, err := cipher.Encrypt(plaintext[:16])
	if err != nil {
		t.Fatalf("raw encrypt failed: %v", err)
	}
	second, err := cipher.Encrypt(plaintext[16:])
	if err != nil {
		t.Fatalf("raw encrypt failed: %v", err)
	}
	want := append(append([]byte(nil), second...), first...)

	ciphertext, err := newTestContext(t, ECB, PaddingCS3, BlockSize).Encrypt(plaintext)
	if err != nil {
		t.Fatalf("CS3 encrypt failed: %v", err)
	}
	if !bytes.Equal(want, ciphertext) {
		t.Fatal("CS3 output is not the independently encrypted units in swapped order")
	}
}

// Partial tails: CS2/CS3 carry the full final unit first (NIST order).
func TestPartialTailSwapOrder(t *testing.T) {
	plaintext := sequence(20)

	for _, mode := range []CipherMode{ECB, CBC} {
		cs1, err := newTestContext(t, mode, PaddingCS1, BlockSize).Encrypt(plaintext)
		if err != nil {
			t.Fatalf("mode %d: CS1 encrypt failed: %v", mode, err)
		}

		want := append(append([]byte(nil), cs1[4:]...), cs1[:4]...)

		cs2, err := newTestContext(t, mode, PaddingCS2, BlockSize).Encrypt(plaintext)
		if err != nil {
			t.Fatalf("mode %d: CS2 encrypt failed: %v", mode, err)
		}
		if !bytes.Equal(want, cs2) {
			t.Fatalf("mode %d: CS2 output is not CS1 with the final unit moved first", mode)
		}

		cs3, err := newTestContext(t, mode, PaddingCS3, BlockSize).Encrypt(plaintext)
		if err != nil {
			t.Fatalf("mode %d: CS3 encrypt failed: %v", mode, err)
		}
		if !bytes.Equal(want, cs3) {
			t.Fatalf("mode %d: CS3 output differs from CS2 for a partial tail", mode)
		}
	}
}

func TestTrailingSwapHelpers(t *testing.T) {
	buf := sequence(20)
	if !bytes.Equal(buf, unswapTrailing(swapTrailing(buf))) {
		t.Fatal("unswapTrailing does not invert swapTrailing")
	}

	single := sequence(16)
	if !bytes.Equal(single, swapTrailing(single)) || !bytes.Equal(single, unswapTrailing(single)) {
		t.Fatal("single-unit buffers must pass through the swaps unchanged")
	}

	double := sequence(32)
	swapped := swapTrailing(double)
	if !bytes.Equal(swapped[:16], double[16:]) || !bytes.Equal(swapped[16:], double[:16]) {
		t.Fatal("32-byte swap must exchange the halves")
	}
}
