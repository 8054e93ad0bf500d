package symmetric

// Ciphertext stealing for the final one or two units of a block-mode
// message, per NIST SP 800-38A Addendum. The callers hand over a tail that
// already contains the last full block in front of any partial one; every
// variant keeps the ciphertext exactly as long as the plaintext.

// cs1Encrypt encrypts the tail in the canonical CS1 layout: the truncated
// penultimate ciphertext unit first, the full final unit after it.
func cs1Encrypt(m *Mode, tail []byte) ([]byte, error) {
	d := len(tail) % BlockSize
	if d == 0 {
		return m.Encrypt(tail)
	}

	cn1, err := m.Encrypt(tail[:BlockSize])
	if err != nil {
		return nil, err
	}

	pn := make([]byte, BlockSize)
	copy(pn, tail[BlockSize:])
	if m.variant == VariantECB {
		// No chaining to steal through; borrow the tail of Cn-1 by hand.
		copy(pn[d:], cn1[d:])
	}
	// CBC leaves the trailing zeros in place: the chaining XOR inside
	// Encrypt substitutes the stolen bytes of Cn-1 on its own.
	cn, err := m.Encrypt(pn)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(tail))
	out = append(out, cn1[:d]...)
	return append(out, cn...), nil
}

func cs1Decrypt(m *Mode, tail []byte) ([]byte, error) {
	d := len(tail) % BlockSize
	if d == 0 {
		return m.Decrypt(tail)
	}

	// Open the final unit out of order, without advancing the chain.
	cn, err := m.DecryptBlock(tail[len(tail)-BlockSize:])
	if err != nil {
		return nil, err
	}

	cn1 := make([]byte, BlockSize)
	copy(cn1, tail[:d])
	copy(cn1[d:], cn[d:])

	pn1, err := m.Decrypt(cn1)
	if err != nil {
		return nil, err
	}

	pn := make([]byte, d)
	if m.variant == VariantCBC {
		for i := 0; i < d; i++ {
			pn[i] = cn[i] ^ cn1[i]
		}
	} else {
		copy(pn, cn[:d])
	}
	return append(pn1, pn...), nil
}

// CS2 reorders the two trailing units only when the final one is partial,
// so a receiver can locate the stolen unit without extra metadata.
func cs2Encrypt(m *Mode, tail []byte) ([]byte, error) {
	out, err := cs1Encrypt(m, tail)
	if err != nil || len(tail)%BlockSize == 0 {
		return out, err
	}
	return swapTrailing(out), nil
}

func cs2Decrypt(m *Mode, tail []byte) ([]byte, error) {
	if len(tail)%BlockSize == 0 {
		return cs1Decrypt(m, tail)
	}
	return cs1Decrypt(m, unswapTrailing(tail))
}

// CS3 always reorders, so a decoder never special-cases alignment. A
// 32-byte tail is two full units encrypted separately before the swap.
func cs3Encrypt(m *Mode, tail []byte) ([]byte, error) {
	var out []byte
	if len(tail) == 2*BlockSize {
		first, err := cs1Encrypt(m, tail[:BlockSize])
		if err != nil {
			return nil, err
		}
		second, err := cs1Encrypt(m, tail[BlockSize:])
		if err != nil {
			return nil, err
		}
		out = append(first, second...)
	} else {
		var err error
		out, err = cs1Encrypt(m, tail)
		if err != nil {
			return nil, err
		}
	}
	return swapTrailing(out), nil
}

func cs3Decrypt(m *Mode, tail []byte) ([]byte, error) {
	swapped := unswapTrailing(tail)
	if len(tail) == 2*BlockSize {
		first, err := cs1Decrypt(m, swapped[:BlockSize])
		if err != nil {
			return nil, err
		}
		second, err := cs1Decrypt(m, swapped[BlockSize:])
		if err != nil {
			return nil, err
		}
		return append(first, second...), nil
	}
	return cs1Decrypt(m, swapped)
}

// swapTrailing moves the final full ciphertext unit in front of the stolen
// remainder; unswapTrailing is its exact inverse. For a 32-byte buffer both
// amount to swapping the halves, for a single unit they are the identity.
func swapTrailing(buf []byte) []byte {
	if len(buf) <= BlockSize {
		return buf
	}
	cut := len(buf) - BlockSize
	out := make([]byte, 0, len(buf))
	out = append(out, buf[cut:]...)
	return append(out, buf[:cut]...)
}

func unswapTrailing(buf []byte) []byte {
	if len(buf) <= BlockSize {
		return buf
	}
	out := make([]byte, 0, len(buf))
	out = append(out, buf[BlockSize:]...)
	return append(out, buf[:BlockSize]...)
}
