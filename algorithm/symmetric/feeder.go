package symmetric

// Feeder chunks an arbitrary byte stream into the units its mode of
// operation needs, holding back one lookahead block so the final call can
// still apply padding or ciphertext stealing. Feed may be called any number
// of times, Final exactly once; afterwards the feeder is inert.
type Feeder struct {
	mode       *Mode
	padding    PaddingOption
	buffer     []byte
	encrypting bool
	finished   bool
}

// NewEncrypter returns a feeder that accepts plaintext and produces
// ciphertext. The mode's chaining state becomes owned by the feeder.
func NewEncrypter(mode *Mode, padding PaddingOption) *Feeder {
	return &Feeder{mode: mode, padding: padding, encrypting: true}
}

// NewDecrypter returns a feeder that accepts ciphertext and produces
// plaintext.
func NewDecrypter(mode *Mode, padding PaddingOption) *Feeder {
	return &Feeder{mode: mode, padding: padding}
}

// Feed appends chunk to the internal buffer and returns every byte that can
// already be transformed without deciding the tail treatment. The result may
// be empty.
func (f *Feeder) Feed(chunk []byte) ([]byte, error) {
	if f.finished {
		return nil, ErrAlreadyFinalized
	}

	f.buffer = append(f.buffer, chunk...)

	var out []byte
	for len(f.buffer) > BlockSize {
		consumable := f.canConsume()
		if consumable == 0 {
			break
		}
		res, err := f.transform(f.buffer[:consumable])
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
		f.buffer = f.buffer[consumable:]
	}
	return out, nil
}

// Final flushes the retained tail through the mode's finalization rule and
// makes the feeder permanently inert.
func (f *Feeder) Final() ([]byte, error) {
	if f.finished {
		return nil, ErrAlreadyFinalized
	}
	f.finished = true

	tail := f.buffer
	f.buffer = nil

	switch f.mode.Variant() {
	case VariantECB, VariantCBC:
		if f.encrypting {
			return f.finalBlockEncrypt(tail)
		}
		return f.finalBlockDecrypt(tail)
	case VariantSegment:
		return f.finalSegment(tail)
	default:
		return f.finalStream(tail)
	}
}

func (f *Feeder) canConsume() int {
	// CS3 swaps the trailing two units unconditionally, so once exactly two
	// blocks remain they must be reserved together for Final.
	if f.padding == PaddingCS3 && len(f.buffer) == 2*BlockSize {
		return 0
	}

	available := len(f.buffer) - BlockSize
	switch f.mode.Variant() {
	case VariantECB, VariantCBC:
		if available >= BlockSize {
			return BlockSize
		}
		return 0
	case VariantSegment:
		return available - available%f.mode.segmentSize
	default:
		return available
	}
}

func (f *Feeder) transform(chunk []byte) ([]byte, error) {
	if f.encrypting {
		return f.mode.Encrypt(chunk)
	}
	return f.mode.Decrypt(chunk)
}

func (f *Feeder) finalBlockEncrypt(tail []byte) ([]byte, error) {
	switch f.padding {
	case PaddingDefault:
		return f.mode.Encrypt(AppendPadding(tail))
	case PaddingNone:
		if len(tail) != BlockSize {
			return nil, ErrInvalidFinalLength
		}
		return f.mode.Encrypt(tail)
	case PaddingCS1, PaddingCS2, PaddingCS3:
		// Stealing needs at least the last full unit; shorter totals have no
		// penultimate ciphertext to borrow from.
		if len(tail) < BlockSize {
			return nil, ErrInvalidFinalLength
		}
		switch f.padding {
		case PaddingCS1:
			return cs1Encrypt(f.mode, tail)
		case PaddingCS2:
			return cs2Encrypt(f.mode, tail)
		default:
			return cs3Encrypt(f.mode, tail)
		}
	default:
		return nil, ErrInvalidPaddingOption
	}
}

func (f *Feeder) finalBlockDecrypt(tail []byte) ([]byte, error) {
	switch f.padding {
	case PaddingDefault:
		plain, err := f.mode.Decrypt(tail)
		if err != nil {
			return nil, err
		}
		return StripPadding(plain)
	case PaddingNone:
		if len(tail) != BlockSize {
			return nil, ErrInvalidFinalLength
		}
		return f.mode.Decrypt(tail)
	case PaddingCS1, PaddingCS2, PaddingCS3:
		if len(tail) < BlockSize {
			return nil, ErrInvalidFinalLength
		}
		switch f.padding {
		case PaddingCS1:
			return cs1Decrypt(f.mode, tail)
		case PaddingCS2:
			return cs2Decrypt(f.mode, tail)
		default:
			return cs3Decrypt(f.mode, tail)
		}
	default:
		return nil, ErrInvalidPaddingOption
	}
}

func (f *Feeder) finalSegment(tail []byte) ([]byte, error) {
	if f.padding != PaddingDefault {
		return nil, ErrInvalidPaddingOption
	}

	// Everything past the tail is independent keystream, so the zero
	// extension can be transformed and thrown away.
	faux := f.mode.segmentSize - len(tail)%f.mode.segmentSize
	padded := append(append([]byte(nil), tail...), make([]byte, faux)...)
	out, err := f.transform(padded)
	if err != nil {
		return nil, err
	}
	return out[:len(tail)], nil
}

func (f *Feeder) finalStream(tail []byte) ([]byte, error) {
	if f.padding != PaddingNone && f.padding != PaddingDefault {
		return nil, ErrInvalidPaddingOption
	}
	return f.transform(tail)
}
