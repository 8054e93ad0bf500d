package symmetric

import (
	"errors"
	"fmt"
	"strings"
)

// BlockSize is the cipher unit size every block mode in this package works
// with. Ciphers with a different block size are rejected by NewMode.
const BlockSize = 16

type CipherMode int

const (
	ECB CipherMode = iota
	CBC
	CFB
	OFB
	CTR
)

// Variant classifies a cipher mode by how its final units must be treated:
// block modes need padding or ciphertext stealing, segment modes truncate a
// zero-extended segment, stream modes pass the tail through unchanged.
type Variant int

const (
	VariantECB Variant = iota
	VariantCBC
	VariantSegment
	VariantStream
)

func (m CipherMode) Variant() Variant {
	switch m {
	case ECB:
		return VariantECB
	case CBC:
		return VariantCBC
	case CFB:
		return VariantSegment
	default:
		return VariantStream
	}
}

type PaddingOption int

const (
	PaddingNone PaddingOption = iota
	PaddingDefault
	PaddingCS1
	PaddingCS2
	PaddingCS3
)

var (
	ErrInvalidPaddingOption = errors.New("invalid padding option")
	ErrInvalidFinalLength   = errors.New("invalid data length for final block")
	ErrAlreadyFinalized     = errors.New("feeder already finalized")
)

type BlockCipher interface {
	SetKey(key []byte) error
	Encrypt(block []byte) ([]byte, error)
	Decrypt(block []byte) ([]byte, error)
	BlockSize() int
}

func ParseCipherMode(mode string) (CipherMode, error) {
	switch strings.ToUpper(mode) {
	case "ECB":
		return ECB, nil
	case "CBC":
		return CBC, nil
	case "CFB":
		return CFB, nil
	case "OFB":
		return OFB, nil
	case "CTR":
		return CTR, nil
	default:
		return 0, fmt.Errorf("unknown cipher mode: %s", mode)
	}
}

func ParsePaddingOption(padding string) (PaddingOption, error) {
	switch strings.ToUpper(padding) {
	case "NONE":
		return PaddingNone, nil
	case "DEFAULT":
		return PaddingDefault, nil
	case "CS1":
		return PaddingCS1, nil
	case "CS2":
		return PaddingCS2, nil
	case "CS3":
		return PaddingCS3, nil
	default:
		return 0, fmt.Errorf("unknown padding option: %s", padding)
	}
}
