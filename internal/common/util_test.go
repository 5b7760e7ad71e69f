package common

import (
	"encoding/hex"
	"testing"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

// ---------- GeneratePrintableBytes ----------

func TestGeneratePrintableBytes_LengthAndRange(t *testing.T) {
	for _, n := range []int{0, 1, 16, 64, 1000} {
		b, err := GeneratePrintableBytes(n)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		if len(b) != n {
			t.Fatalf("n=%d: expected length %d, got %d", n, n, len(b))
		}
		if !IsPrintable(b) {
			t.Fatalf("n=%d: non-printable byte in %v", n, b)
		}
	}
}

func TestGeneratePrintableBytes_CoversRange(t *testing.T) {
	b, err := GeneratePrintableBytes(20000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := make(map[byte]bool)
	for _, c := range b {
		seen[c] = true
	}
	// 93 symbols, 20000 draws: every symbol shows up with overwhelming probability.
	if len(seen) != PrintableMax-PrintableMin {
		t.Fatalf("expected %d distinct bytes, got %d", PrintableMax-PrintableMin, len(seen))
	}
}

// ---------- IsPrintable ----------

func TestIsPrintable(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want bool
	}{
		{"empty", nil, true},
		{"bounds", []byte{PrintableMin, PrintableMax - 1}, true},
		{"space", []byte(" "), false},
		{"tilde", []byte{126}, false},
		{"nul", []byte{'a', 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPrintable(tt.in); got != tt.want {
				t.Fatalf("IsPrintable(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
