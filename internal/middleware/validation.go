package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/pkg/pairkey"
)

// MaxPairKeyLen bounds the external pair id: two uint64s and a dash.
const MaxPairKeyLen = 41

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidatePairKey checks that an external pair id is well-formed and returns
// the decoded key. The second return is an error message, empty on success.
func ValidatePairKey(id string) (pairkey.Key, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pairkey.Key{}, "pair id is required"
	}
	if len(id) > MaxPairKeyLen {
		return pairkey.Key{}, "pair id is too long"
	}
	key, err := pairkey.Decode(id)
	if err != nil {
		return pairkey.Key{}, "pair id must be two numbers joined by a dash, e.g. 42-3"
	}
	return key, ""
}

// ValidateVoteValue parses the vote form field; only -1, 0 and 1 are legal.
func ValidateVoteValue(s string) (int, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "vote is required"
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < -1 || v > 1 {
		return 0, "vote must be -1, 0 or 1"
	}
	return v, ""
}

// ValidateEntityID parses a quote or author path id.
func ValidateEntityID(s string) (uint64, string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "id is required"
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, "id must be a non-negative integer"
	}
	return id, ""
}
