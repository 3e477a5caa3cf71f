// Package pairkey implements the external id format for wrong-quote pairs:
// the quote id and the author id as decimal integers joined by a dash,
// e.g. "42-3". The encoding is the pair's primary key and appears verbatim
// in URLs, form fields and share links.
package pairkey

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidKey is returned when a string does not parse as a pair key.
var ErrInvalidKey = errors.New("pairkey: invalid key")

// Key identifies one (quote, author) pairing.
type Key struct {
	QuoteID  uint64
	AuthorID uint64
}

// Encode returns the canonical string form of a pair key.
func Encode(quoteID, authorID uint64) string {
	return strconv.FormatUint(quoteID, 10) + "-" + strconv.FormatUint(authorID, 10)
}

// String returns the canonical string form of the key.
func (k Key) String() string {
	return Encode(k.QuoteID, k.AuthorID)
}

// Decode parses an externally supplied key. Both halves must be plain
// non-negative decimal integers; anything else (signs, whitespace, hex,
// missing or extra segments) fails with ErrInvalidKey.
func Decode(s string) (Key, error) {
	quoteStr, authorStr, ok := strings.Cut(s, "-")
	if !ok || quoteStr == "" || authorStr == "" {
		return Key{}, ErrInvalidKey
	}
	quoteID, err := parseID(quoteStr)
	if err != nil {
		return Key{}, ErrInvalidKey
	}
	authorID, err := parseID(authorStr)
	if err != nil {
		return Key{}, ErrInvalidKey
	}
	return Key{QuoteID: quoteID, AuthorID: authorID}, nil
}

// parseID rejects everything ParseUint tolerates that the key format does
// not: leading "+", "0x" prefixes and underscores are only possible with
// base guessing, so parse with an explicit base 10.
func parseID(s string) (uint64, error) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidKey
		}
	}
	return strconv.ParseUint(s, 10, 64)
}
