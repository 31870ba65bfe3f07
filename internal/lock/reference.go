package lock

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ReferenceLength   = 10
)

// NewReference returns a random code over an alphabet without look-alike
// characters, 32^10 possible values.
func NewReference() (string, error) {
	buf := make([]byte, ReferenceLength)
	size := big.NewInt(int64(len(referenceAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate reference: %w", err)
		}
		buf[i] = referenceAlphabet[n.Int64()]
	}
	return string(buf), nil
}
