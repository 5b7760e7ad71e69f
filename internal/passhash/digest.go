package passhash

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the width of the derived key inside a Digest.
	KeySize = 32
	// DigestSize is the width of an encoded Digest.
	DigestSize = 4 + KeySize
	// MaxPasswordBytes bounds the plaintext accepted by ComputeDigest.
	MaxPasswordBytes = 72
)

// Scheme identifies the hashing construction a Digest was produced with.
type Scheme byte

// SchemeArgon2id is Argon2id, version 0x13.
const SchemeArgon2id Scheme = 1

func (s Scheme) String() string {
	switch s {
	case SchemeArgon2id:
		return "argon2id"
	default:
		return fmt.Sprintf("scheme(%d)", byte(s))
	}
}

// Cost is the work factor of one digest computation. Memory is the base-2
// logarithm of the memory size in KiB, so each step doubles the runtime.
type Cost struct {
	Memory  uint8
	Time    uint8
	Threads uint8
}

// Cost bounds.
var (
	MinCost = Cost{Memory: 8, Time: 1, Threads: 1}
	MaxCost = Cost{Memory: 21, Time: 16, Threads: 16}
)

// DefaultCost follows the second recommended Argon2id option of RFC 9106
// (64 MiB, 3 passes, 4 lanes).
var DefaultCost = Cost{Memory: 16, Time: 3, Threads: 4}

// Validate reports whether every field of c lies within [MinCost, MaxCost].
func (c Cost) Validate() error {
	if c.Memory < MinCost.Memory || c.Memory > MaxCost.Memory {
		return fmt.Errorf("memory exponent %d out of range [%d, %d]", c.Memory, MinCost.Memory, MaxCost.Memory)
	}
	if c.Time < MinCost.Time || c.Time > MaxCost.Time {
		return fmt.Errorf("time %d out of range [%d, %d]", c.Time, MinCost.Time, MaxCost.Time)
	}
	if c.Threads < MinCost.Threads || c.Threads > MaxCost.Threads {
		return fmt.Errorf("threads %d out of range [%d, %d]", c.Threads, MinCost.Threads, MaxCost.Threads)
	}
	return nil
}

// MemoryKiB returns the Argon2 memory parameter in KiB.
func (c Cost) MemoryKiB() uint32 {
	return 1 << c.Memory
}

func (c Cost) String() string {
	return fmt.Sprintf("m=%d,t=%d,p=%d", c.MemoryKiB(), c.Time, c.Threads)
}

// Digest is the derived, non-reversible form of a password together with the
// parameters needed to recompute it.
type Digest struct {
	Scheme Scheme
	Cost   Cost
	Key    [KeySize]byte
}

// ComputeDigest derives a Digest from password and salt with the given cost.
// The result is deterministic for fixed inputs. It fails with common.ErrHashing
// if the password is empty, longer than MaxPasswordBytes or contains a NUL
// byte, if the salt is not printable, or if the cost is out of range.
func ComputeDigest(password string, salt Salt, cost Cost) (Digest, error) {
	var d Digest

	if len(password) == 0 {
		return d, fmt.Errorf("%w: empty password", common.ErrHashing)
	}
	if len(password) > MaxPasswordBytes {
		return d, fmt.Errorf("%w: password longer than %d bytes", common.ErrHashing, MaxPasswordBytes)
	}
	if strings.IndexByte(password, 0) >= 0 {
		return d, fmt.Errorf("%w: password contains a NUL byte", common.ErrHashing)
	}
	if !salt.valid() {
		return d, fmt.Errorf("%w: salt has non-printable bytes", common.ErrHashing)
	}
	if err := cost.Validate(); err != nil {
		return d, fmt.Errorf("%w: %v", common.ErrHashing, err)
	}

	pw := []byte(password)
	key := argon2.IDKey(pw, salt[:], uint32(cost.Time), cost.MemoryKiB(), cost.Threads, KeySize)
	common.WipeByteArray(pw)

	d.Scheme = SchemeArgon2id
	d.Cost = cost
	copy(d.Key[:], key)
	common.WipeByteArray(key)

	return d, nil
}

// Encode returns the fixed-width storage representation of d.
func (d Digest) Encode() []byte {
	b := make([]byte, DigestSize)
	b[0] = byte(d.Scheme)
	b[1] = d.Cost.Memory
	b[2] = d.Cost.Time
	b[3] = d.Cost.Threads
	copy(b[4:], d.Key[:])
	return b
}

// DecodeDigest parses the storage representation produced by Encode. It fails
// with common.ErrMalformedCredential if b has the wrong width, names an unknown
// scheme or carries an out-of-range cost.
func DecodeDigest(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, fmt.Errorf("%w: digest is %d bytes, want %d", common.ErrMalformedCredential, len(b), DigestSize)
	}
	d.Scheme = Scheme(b[0])
	if d.Scheme != SchemeArgon2id {
		return d, fmt.Errorf("%w: unknown scheme %s", common.ErrMalformedCredential, d.Scheme)
	}
	d.Cost = Cost{Memory: b[1], Time: b[2], Threads: b[3]}
	if err := d.Cost.Validate(); err != nil {
		return d, fmt.Errorf("%w: %v", common.ErrMalformedCredential, err)
	}
	copy(d.Key[:], b[4:])
	return d, nil
}

// Equal compares two digests in constant time over the full encoded width.
func Equal(a, b Digest) bool {
	return subtle.ConstantTimeCompare(a.Encode(), b.Encode()) == 1
}
