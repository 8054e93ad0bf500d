// Package rc6 implements the RC6-32/20 block cipher (16-byte block,
// 16/24/32-byte keys).
package rc6

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	rounds    = 20
	roundKeys = 2*rounds + 4
	blockSize = 16
)

const (
	p32 uint32 = 0xb7e15163
	q32 uint32 = 0x9e3779b9
)

type RC6 struct {
	key []byte
	s   [roundKeys]uint32
}

func NewRC6(key []byte) (*RC6, error) {
	c := &RC6{}
	if err := c.SetKey(key); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *RC6) BlockSize() int { return blockSize }

func (c *RC6) SetKey(key []byte) error {
	switch len(key) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("invalid key size %d", len(key))
	}
	c.key = append(c.key[:0], key...)
	c.expandKey()
	return nil
}

func (c *RC6) expandKey() {
	words := (len(c.key) + 3) / 4
	l := make([]uint32, words)
	for i := len(c.key) - 1; i >= 0; i-- {
		l[i/4] = l[i/4]<<8 + uint32(c.key[i])
	}

	c.s[0] = p32
	for i := 1; i < roundKeys; i++ {
		c.s[i] = c.s[i-1] + q32
	}

	var a, b uint32
	var i, j int
	// roundKeys always exceeds the key word count, so 3*roundKeys passes
	// mix every word enough times.
	for k := 0; k < 3*roundKeys; k++ {
		a = bits.RotateLeft32(c.s[i]+a+b, 3)
		c.s[i] = a
		b = rotl(l[j]+a+b, a+b)
		l[j] = b
		i = (i + 1) % roundKeys
		j = (j + 1) % words
	}
}

func (c *RC6) Encrypt(block []byte) ([]byte, error) {
	if len(block) != blockSize {
		return nil, fmt.Errorf("invalid block size %d", len(block))
	}

	A := binary.LittleEndian.Uint32(block[0:4])
	B := binary.LittleEndian.Uint32(block[4:8])
	C := binary.LittleEndian.Uint32(block[8:12])
	D := binary.LittleEndian.Uint32(block[12:16])

	B += c.s[0]
	D += c.s[1]

	for i := 1; i <= rounds; i++ {
		t := bits.RotateLeft32(B*(2*B+1), 5)
		u := bits.RotateLeft32(D*(2*D+1), 5)

		A = rotl(A^t, u) + c.s[2*i]
		C = rotl(C^u, t) + c.s[2*i+1]

		A, B, C, D = B, C, D, A
	}
	A += c.s[2*rounds+2]
	C += c.s[2*rounds+3]

	out := make([]byte, blockSize)
	binary.LittleEndian.PutUint32(out[0:4], A)
	binary.LittleEndian.PutUint32(out[4:8], B)
	binary.LittleEndian.PutUint32(out[8:12], C)
	binary.LittleEndian.PutUint32(out[12:16], D)
	return out, nil
}

func (c *RC6) Decrypt(block []byte) ([]byte, error) {
	if len(block) != blockSize {
		return nil, fmt.Errorf("invalid block size %d", len(block))
	}

	A := binary.LittleEndian.Uint32(block[0:4])
	B := binary.LittleEndian.Uint32(block[4:8])
	C := binary.LittleEndian.Uint32(block[8:12])
	D := binary.LittleEndian.Uint32(block[12:16])

	C -= c.s[2*rounds+3]
	A -= c.s[2*rounds+2]

	for i := rounds; i >= 1; i-- {
		A, B, C, D = D, A, B, C

		u := bits.RotateLeft32(D*(2*D+1), 5)
		t := bits.RotateLeft32(B*(2*B+1), 5)

		C = rotr(C-c.s[2*i+1], t) ^ u
		A = rotr(A-c.s[2*i], u) ^ t
	}
	D -= c.s[1]
	B -= c.s[0]

	out := make([]byte, blockSize)
	binary.LittleEndian.PutUint32(out[0:4], A)
	binary.LittleEndian.PutUint32(out[4:8], B)
	binary.LittleEndian.PutUint32(out[8:12], C)
	binary.LittleEndian.PutUint32(out[12:16], D)
	return out, nil
}

func rotl(x, y uint32) uint32 {
	return bits.RotateLeft32(x, int(y&31))
}

func rotr(x, y uint32) uint32 {
	return bits.RotateLeft32(x, -int(y&31))
}
