package pairkey

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		quoteID  uint64
		authorID uint64
		want     string
	}{
		{"simple", 42, 3, "42-3"},
		{"zero ids", 0, 0, "0-0"},
		{"large ids", 18446744073709551615, 1, "18446744073709551615-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.quoteID, tt.authorID)
			if got != tt.want {
				t.Errorf("Encode(%d, %d) = %q, want %q", tt.quoteID, tt.authorID, got, tt.want)
			}
		})
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	pairs := []Key{
		{42, 3},
		{0, 0},
		{1, 999999},
		{18446744073709551615, 18446744073709551615},
	}

	for _, p := range pairs {
		got, err := Decode(Encode(p.QuoteID, p.AuthorID))
		if err != nil {
			t.Fatalf("Decode(Encode(%v)) error: %v", p, err)
		}
		if got != p {
			t.Errorf("round trip = %v, want %v", got, p)
		}
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"no dash", "42"},
		{"missing author", "42-"},
		{"missing quote", "-3"},
		{"only dash", "-"},
		{"negative quote", "-42-3"},
		{"negative author", "42--3"},
		{"plus sign", "+42-3"},
		{"hex", "0x2a-3"},
		{"whitespace", " 42-3"},
		{"trailing garbage", "42-3x"},
		{"extra segment", "42-3-7"},
		{"non numeric", "foo-bar"},
		{"overflow", "99999999999999999999-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidKey", tt.input, err)
			}
		})
	}
}

func TestKey_String(t *testing.T) {
	k := Key{QuoteID: 42, AuthorID: 3}
	if k.String() != "42-3" {
		t.Errorf("String() = %q, want %q", k.String(), "42-3")
	}
}
