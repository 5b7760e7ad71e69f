package passhash

import (
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/common"
)

// SaltSize is the width of a stored salt in bytes.
const SaltSize = 16

// Salt is a per-credential random value. Salts are not secret but must be
// unpredictable and unique per credential.
type Salt [SaltSize]byte

// GenerateSalt returns a fresh salt whose bytes are drawn uniformly from the
// printable range using crypto/rand.
func GenerateSalt() (Salt, error) {
	var s Salt
	b, err := common.GeneratePrintableBytes(SaltSize)
	if err != nil {
		return s, fmt.Errorf("%w: generating salt: %v", common.ErrHashing, err)
	}
	copy(s[:], b)
	return s, nil
}

// DecodeSalt validates a stored salt column and converts it to a Salt.
func DecodeSalt(b []byte) (Salt, error) {
	var s Salt
	if len(b) != SaltSize {
		return s, fmt.Errorf("%w: salt is %d bytes, want %d", common.ErrMalformedCredential, len(b), SaltSize)
	}
	if !common.IsPrintable(b) {
		return s, fmt.Errorf("%w: salt has non-printable bytes", common.ErrMalformedCredential)
	}
	copy(s[:], b)
	return s, nil
}

func (s Salt) valid() bool {
	return common.IsPrintable(s[:])
}
