// Package platform provides host capabilities for the TON Connect client
// when it runs outside a mobile OS: secure randomness and an in-process
// deep-link relay.
package platform

import (
	"crypto/rand"
	"fmt"
	"io"
)

// CryptoRandom reads from the operating system CSPRNG. It returns an error
// rather than falling back to a weaker source.
type CryptoRandom struct {
	reader io.Reader
}

// NewCryptoRandom returns a CryptoRandom backed by crypto/rand.
func NewCryptoRandom() CryptoRandom {
	return CryptoRandom{reader: rand.Reader}
}

// RandomBytes returns n random bytes.
func (r CryptoRandom) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative length %d", n)
	}
	reader := r.reader
	if reader == nil {
		reader = rand.Reader
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(reader, b); err != nil {
		return nil, fmt.Errorf("read secure random: %w", err)
	}
	return b, nil
}
