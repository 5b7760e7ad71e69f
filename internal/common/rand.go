package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Printable byte range used for generated salts: '!' (33) up to, but not
// including, DEL-1 (126).
const (
	PrintableMin = 33
	PrintableMax = 126
)

// MakeRandHexString generates size random bytes and returns them hex-encoded,
// so the resulting string is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GeneratePrintableBytes fills a new slice of length n with bytes drawn
// independently and uniformly from [PrintableMin, PrintableMax) using
// crypto/rand. Rejection sampling keeps the distribution uniform: raw bytes at
// or above the largest multiple of the range width are discarded.
//
// It is safe to call from multiple goroutines.
func GeneratePrintableBytes(n int) ([]byte, error) {
	const width = PrintableMax - PrintableMin
	const limit = 256 - 256%width

	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("reading random source: %w", err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, byte(PrintableMin+int(b)%width))
			if len(out) == n {
				break
			}
		}
	}
	return out, nil
}

// IsPrintable reports whether every byte of b lies in [PrintableMin, PrintableMax).
func IsPrintable(b []byte) bool {
	for _, c := range b {
		if c < PrintableMin || c >= PrintableMax {
			return false
		}
	}
	return true
}

// WipeByteArray overwrites b with zeros. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
