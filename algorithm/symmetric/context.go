package symmetric

import (
	"fmt"
)

// CipherContext bundles a cipher with a mode, padding option and IV. It is
// safe to reuse for many messages: every operation builds a fresh Mode, so
// no chaining state leaks between calls.
type CipherContext struct {
	key         []byte
	cipher      BlockCipher
	mode        CipherMode
	padding     PaddingOption
	iv          []byte
	segmentSize int
}

func NewCipherContext(
	key []byte,
	cipher BlockCipher,
	mode CipherMode,
	padding PaddingOption,
	iv []byte,
	segmentSize int) (*CipherContext, error) {

	if cipher == nil {
		return nil, fmt.Errorf("cipher is not initialized")
	}
	if err := cipher.SetKey(key); err != nil {
		return nil, fmt.Errorf("failed to set key: %w", err)
	}

	cryptoContext := &CipherContext{
		key:         key,
		cipher:      cipher,
		mode:        mode,
		padding:     padding,
		iv:          append([]byte(nil), iv...),
		segmentSize: segmentSize,
	}

	// Surface bad mode/iv/segment combinations at construction time.
	if _, err := cryptoContext.NewMode(); err != nil {
		return nil, err
	}
	return cryptoContext, nil
}

func (c *CipherContext) NewMode() (*Mode, error) {
	return NewMode(c.cipher, c.mode, c.iv, c.segmentSize)
}

func (c *CipherContext) NewEncrypter() (*Feeder, error) {
	mode, err := c.NewMode()
	if err != nil {
		return nil, err
	}
	return NewEncrypter(mode, c.padding), nil
}

func (c *CipherContext) NewDecrypter() (*Feeder, error) {
	mode, err := c.NewMode()
	if err != nil {
		return nil, err
	}
	return NewDecrypter(mode, c.padding), nil
}

func (c *CipherContext) Encrypt(data []byte) ([]byte, error) {
	feeder, err := c.NewEncrypter()
	if err != nil {
		return nil, err
	}

	out, err := feeder.Feed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}
	last, err := feeder.Final()
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}
	return append(out, last...), nil
}

func (c *CipherContext) Decrypt(data []byte) ([]byte, error) {
	feeder, err := c.NewDecrypter()
	if err != nil {
		return nil, err
	}

	out, err := feeder.Feed(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}
	last, err := feeder.Final()
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt data: %w", err)
	}
	return append(out, last...), nil
}

func (c *CipherContext) EncryptAsync(data []byte) (<-chan []byte, <-chan error) {
	resultChan := make(chan []byte, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer close(resultChan)
		defer close(errorChan)

		encrypted, err := c.Encrypt(data)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- encrypted
	}()

	return resultChan, errorChan
}

func (c *CipherContext) DecryptAsync(data []byte) (<-chan []byte, <-chan error) {
	resultChan := make(chan []byte, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer close(resultChan)
		defer close(errorChan)

		decrypted, err := c.Decrypt(data)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- decrypted
	}()

	return resultChan, errorChan
}
