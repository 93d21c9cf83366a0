package id

import (
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
)

func TestNewID32_IsV4UUID(t *testing.T) {
	got := NewID32()
	if !IsID32(got) {
		t.Fatalf("not 32-char lowercase hex: %q", got)
	}
	b, err := hex.DecodeString(got)
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}
	u, err := uuid.FromBytes(b)
	if err != nil {
		t.Fatalf("uuid.FromBytes: %v", err)
	}
	if u.Version() != 4 {
		t.Fatalf("version = %d, want 4", u.Version())
	}
}

func TestNewID32_Uniqueness(t *testing.T) {
	const n = 500
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := NewID32()
		if _, ok := seen[v]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, v)
		}
		seen[v] = struct{}{}
	}
}

func TestIsID32(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0123456789abcdef0123456789abcdef", true},
		{"0123456789ABCDEF0123456789abcdef", false},
		{"0123456789abcdef0123456789abcde", false},
		{"0123456789abcdef0123456789abcdeg", false},
		{"01234567-89ab-cdef-0123-456789abcdef", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsID32(tt.in); got != tt.want {
			t.Fatalf("IsID32(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
