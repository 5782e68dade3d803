// Package credential generates the pass code / PIN pair handed to a
// visitor. Generation is pure: no session state, no uniqueness tracking.
// With a 36^6 code space, collisions within a session are accepted as
// negligible.
package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const codeLength = 6

// NewPassCode returns a 6-character uppercase alphanumeric pass code.
func NewPassCode() (string, error) {
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("pass code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// NewPIN returns a 4-digit numeric PIN in [1000, 9999].
func NewPIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("pin: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
