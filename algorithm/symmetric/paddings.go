package symmetric

import (
	"bytes"
	"errors"
)

// AppendPadding extends data to the next block boundary with 1..16 bytes,
// each holding the pad count, so stripping is always unambiguous. Data that
// is already aligned gains a whole block.
func AppendPadding(data []byte) []byte {
	padSize := BlockSize - len(data)%BlockSize
	padding := bytes.Repeat([]byte{byte(padSize)}, padSize)
	return append(append([]byte(nil), data...), padding...)
}

// StripPadding removes padding produced by AppendPadding, validating every
// pad byte.
func StripPadding(data []byte) ([]byte, error) {
	if len(data) == 0 || len(data)%BlockSize != 0 {
		return nil, errors.New("invalid padded data length")
	}

	padSize := int(data[len(data)-1])
	if padSize < 1 || padSize > BlockSize {
		return nil, errors.New("invalid padding size")
	}
	for i := len(data) - padSize; i < len(data); i++ {
		if data[i] != byte(padSize) {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padSize], nil
}
