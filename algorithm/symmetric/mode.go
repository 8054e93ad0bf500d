package symmetric

import (
	"errors"
	"fmt"
)

// Mode applies one mode of operation over a block cipher. Encrypt and
// Decrypt advance the internal chaining state, so a Mode belongs to exactly
// one stream of data; build a fresh one per message.
type Mode struct {
	cipher      BlockCipher
	mode        CipherMode
	variant     Variant
	segmentSize int
	chain       []byte
	keystream   []byte
}

func NewMode(cipher BlockCipher, mode CipherMode, iv []byte, segmentSize int) (*Mode, error) {
	if cipher == nil {
		return nil, errors.New("cipher is not initialized")
	}
	if cipher.BlockSize() != BlockSize {
		return nil, fmt.Errorf("cipher block size must be %d, got %d", BlockSize, cipher.BlockSize())
	}

	m := &Mode{
		cipher:      cipher,
		mode:        mode,
		variant:     mode.Variant(),
		segmentSize: BlockSize,
	}

	switch mode {
	case ECB:
	case CBC, OFB, CTR:
		if len(iv) != BlockSize {
			return nil, errors.New("iv length must be equal to block size")
		}
		m.chain = append([]byte(nil), iv...)
	case CFB:
		if len(iv) != BlockSize {
			return nil, errors.New("iv length must be equal to block size")
		}
		if segmentSize < 1 || segmentSize > BlockSize {
			return nil, fmt.Errorf("segment size must be between 1 and %d", BlockSize)
		}
		m.segmentSize = segmentSize
		m.chain = append([]byte(nil), iv...)
	default:
		return nil, fmt.Errorf("unsupported cipher mode: %d", mode)
	}

	return m, nil
}

func (m *Mode) Variant() Variant { return m.variant }

// UnitSize is the granularity the mode consumes data at: whole blocks for
// ECB/CBC, one segment for CFB, single bytes for the stream modes.
func (m *Mode) UnitSize() int {
	switch m.variant {
	case VariantECB, VariantCBC:
		return BlockSize
	case VariantSegment:
		return m.segmentSize
	default:
		return 1
	}
}

func (m *Mode) Encrypt(data []byte) ([]byte, error) {
	switch m.mode {
	case ECB:
		return m.applyECB(data, m.cipher.Encrypt)
	case CBC:
		return m.encryptCBC(data)
	case CFB:
		return m.encryptCFB(data)
	case OFB, CTR:
		return m.xorKeystream(data)
	default:
		return nil, fmt.Errorf("unsupported cipher mode: %d", m.mode)
	}
}

func (m *Mode) Decrypt(data []byte) ([]byte, error) {
	switch m.mode {
	case ECB:
		return m.applyECB(data, m.cipher.Decrypt)
	case CBC:
		return m.decryptCBC(data)
	case CFB:
		return m.decryptCFB(data)
	case OFB, CTR:
		return m.xorKeystream(data)
	default:
		return nil, fmt.Errorf("unsupported cipher mode: %d", m.mode)
	}
}

// DecryptBlock applies the cipher's inverse to a single block without
// touching the chaining state. Ciphertext stealing needs it to open the
// final unit out of order.
func (m *Mode) DecryptBlock(block []byte) ([]byte, error) {
	if m.variant != VariantECB && m.variant != VariantCBC {
		return nil, errors.New("raw block decryption requires a block mode")
	}
	if len(block) != BlockSize {
		return nil, fmt.Errorf("block must be %d bytes", BlockSize)
	}
	return m.cipher.Decrypt(block)
}

func (m *Mode) applyECB(data []byte, transform func([]byte) ([]byte, error)) ([]byte, error) {
	if len(data)%BlockSize != 0 {
		return nil, errors.New("data length must be a multiple of the block size")
	}

	out := make([]byte, len(data))
	for pos := 0; pos < len(data); pos += BlockSize {
		block, err := transform(data[pos : pos+BlockSize])
		if err != nil {
			return nil, fmt.Errorf("cipher failed at block %d: %w", pos/BlockSize, err)
		}
		copy(out[pos:], block)
	}
	return out, nil
}

func (m *Mode) encryptCBC(data []byte) ([]byte, error) {
	if len(data)%BlockSize != 0 {
		return nil, errors.New("data length must be a multiple of the block size")
	}

	out := make([]byte, len(data))
	for pos := 0; pos < len(data); pos += BlockSize {
		xored := xorBlocks(data[pos:pos+BlockSize], m.chain)
		block, err := m.cipher.Encrypt(xored)
		if err != nil {
			return nil, fmt.Errorf("encryption failed at block %d: %w", pos/BlockSize, err)
		}
		copy(out[pos:], block)
		copy(m.chain, block)
	}
	return out, nil
}

func (m *Mode) decryptCBC(data []byte) ([]byte, error) {
	if len(data)%BlockSize != 0 {
		return nil, errors.New("data length must be a multiple of the block size")
	}

	out := make([]byte, len(data))
	for pos := 0; pos < len(data); pos += BlockSize {
		block, err := m.cipher.Decrypt(data[pos : pos+BlockSize])
		if err != nil {
			return nil, fmt.Errorf("decryption failed at block %d: %w", pos/BlockSize, err)
		}
		copy(out[pos:], xorBlocks(block, m.chain))
		copy(m.chain, data[pos:pos+BlockSize])
	}
	return out, nil
}

func (m *Mode) encryptCFB(data []byte) ([]byte, error) {
	if len(data)%m.segmentSize != 0 {
		return nil, errors.New("data length must be a multiple of the segment size")
	}

	out := make([]byte, len(data))
	for pos := 0; pos < len(data); pos += m.segmentSize {
		keystream, err := m.cipher.Encrypt(m.chain)
		if err != nil {
			return nil, fmt.Errorf("encryption failed at segment %d: %w", pos/m.segmentSize, err)
		}
		segment := xorBlocks(data[pos:pos+m.segmentSize], keystream)
		copy(out[pos:], segment)
		m.shiftRegister(segment)
	}
	return out, nil
}

func (m *Mode) decryptCFB(data []byte) ([]byte, error) {
	if len(data)%m.segmentSize != 0 {
		return nil, errors.New("data length must be a multiple of the segment size")
	}

	out := make([]byte, len(data))
	for pos := 0; pos < len(data); pos += m.segmentSize {
		keystream, err := m.cipher.Encrypt(m.chain)
		if err != nil {
			return nil, fmt.Errorf("decryption failed at segment %d: %w", pos/m.segmentSize, err)
		}
		segment := data[pos : pos+m.segmentSize]
		copy(out[pos:], xorBlocks(segment, keystream))
		m.shiftRegister(segment)
	}
	return out, nil
}

// shiftRegister slides the CFB feedback register left by one segment and
// feeds the newest ciphertext segment in from the right.
func (m *Mode) shiftRegister(segment []byte) {
	copy(m.chain, m.chain[len(segment):])
	copy(m.chain[BlockSize-len(segment):], segment)
}

func (m *Mode) xorKeystream(data []byte) ([]byte, error) {
	out := make([]byte, len(data))
	for i := range data {
		if len(m.keystream) == 0 {
			if err := m.nextKeystream(); err != nil {
				return nil, err
			}
		}
		out[i] = data[i] ^ m.keystream[0]
		m.keystream = m.keystream[1:]
	}
	return out, nil
}

func (m *Mode) nextKeystream() error {
	block, err := m.cipher.Encrypt(m.chain)
	if err != nil {
		return fmt.Errorf("keystream generation failed: %w", err)
	}
	if m.mode == OFB {
		copy(m.chain, block)
	} else {
		incrementCounter(m.chain)
	}
	m.keystream = block
	return nil
}

func xorBlocks(a, b []byte) []byte {
	res := make([]byte, len(a))
	for i := 0; i < len(a); i++ {
		res[i] = a[i] ^ b[i]
	}
	return res
}

func incrementCounter(counter []byte) {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] != 0 {
			break
		}
	}
}
