// Package rc5 implements RC5-64/16: 64-bit words, 16 rounds, 16-byte block.
package rc5

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	rounds    = 16
	roundKeys = 2 * (rounds + 1)
	blockSize = 16
)

const (
	p64 uint64 = 0xb7e151628aed2a6b
	q64 uint64 = 0x9e3779b97f4a7c15
)

type RC5 struct {
	key []byte
	s   [roundKeys]uint64
}

func NewRC5(key []byte) (*RC5, error) {
	c := &RC5{}
	if err := c.SetKey(key); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RC5) BlockSize() int { return blockSize }

func (c *RC5) SetKey(key []byte) error {
	if len(key) == 0 || len(key) > 255 {
		return fmt.Errorf("invalid key size %d", len(key))
	}
	c.key = append(c.key[:0], key...)
	c.expandKey()
	return nil
}

func (c *RC5) expandKey() {
	words := (len(c.key) + 7) / 8
	l := make([]uint64, words)
	for i := len(c.key) - 1; i >= 0; i-- {
		l[i/8] = l[i/8]<<8 + uint64(c.key[i])
	}

	c.s[0] = p64
	for i := 1; i < roundKeys; i++ {
		c.s[i] = c.s[i-1] + q64
	}

	passes := 3 * roundKeys
	if 3*words > passes {
		passes = 3 * words
	}

	var a, b uint64
	var i, j int
	for k := 0; k < passes; k++ {
		a = bits.RotateLeft64(c.s[i]+a+b, 3)
		c.s[i] = a
		b = rotl(l[j]+a+b, a+b)
		l[j] = b
		i = (i + 1) % roundKeys
		j = (j + 1) % words
	}
}

func (c *RC5) Encrypt(block []byte) ([]byte, error) {
	if len(block) != blockSize {
		return nil, fmt.Errorf("invalid block size %d", len(block))
	}

	A := binary.LittleEndian.Uint64(block[:8]) + c.s[0]
	B := binary.LittleEndian.Uint64(block[8:]) + c.s[1]

	for i := 1; i <= rounds; i++ {
		A = rotl(A^B, B) + c.s[2*i]
		B = rotl(B^A, A) + c.s[2*i+1]
	}

	out := make([]byte, blockSize)
	binary.LittleEndian.PutUint64(out[:8], A)
	binary.LittleEndian.PutUint64(out[8:], B)
	return out, nil
}

func (c *RC5) Decrypt(block []byte) ([]byte, error) {
	if len(block) != blockSize {
		return nil, fmt.Errorf("invalid block size %d", len(block))
	}

	A := binary.LittleEndian.Uint64(block[:8])
	B := binary.LittleEndian.Uint64(block[8:])

	for i := rounds; i >= 1; i-- {
		B = rotr(B-c.s[2*i+1], A) ^ A
		A = rotr(A-c.s[2*i], B) ^ B
	}
	B -= c.s[1]
	A -= c.s[0]

	out := make([]byte, blockSize)
	binary.LittleEndian.PutUint64(out[:8], A)
	binary.LittleEndian.PutUint64(out[8:], B)
	return out, nil
}

func rotl(x, y uint64) uint64 {
	return bits.RotateLeft64(x, int(y&63))
}

func rotr(x, y uint64) uint64 {
	return bits.RotateLeft64(x, -int(y&63))
}
