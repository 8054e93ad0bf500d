package symmetric

import (
	"bytes"
	"testing"
)

func TestPaddingRoundTrip(t *testing.T) {
	for length := 0; length <= 48; length++ {
		data := sequence(length)

		padded := AppendPadding(data)
		if len(padded)%BlockSize != 0 {
			t.Fatalf("length %d: padded to %d, not block aligned", length, len(padded))
		}
		if len(padded) == len(data) {
			t.Fatalf("length %d: padding must always add bytes", length)
		}

		stripped, err := StripPadding(padded)
		if err != nil {
			t.Fatalf("length %d: strip failed: %v", length, err)
		}
		if !bytes.Equal(data, stripped) {
			t.Fatalf("length %d: round trip mismatch", length)
		}
	}
}

func TestAppendPaddingAlignedInput(t *testing.T) {
	padded := AppendPadding(sequence(32))
	if len(padded) != 48 {
		t.Fatalf("aligned input must gain a full block, got %d bytes", len(padded))
	}
	for _, b := range padded[32:] {
		if b != BlockSize {
			t.Fatalf("pad byte %#x, want %#x", b, BlockSize)
		}
	}
}

func TestStripPaddingRejectsCorruptInput(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"unaligned", sequence(17)},
		{"zero count", append(sequence(15), 0)},
		{"oversized count", append(sequence(15), 17)},
		{"inconsistent bytes", append(sequence(13), 2, 3, 3)},
	}
	for _, tc := range cases {
		if _, err := StripPadding(tc.data); err == nil {
			t.Fatalf("%s: want error", tc.name)
		}
	}
}
