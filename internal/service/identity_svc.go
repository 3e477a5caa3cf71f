package service

import (
	"regexp"

	"github.com/google/uuid"

	"github.com/asozialesnetzwerk/zitate-go/pkg/hash"
)

// tokenRe matches the tokens we mint: canonical lowercase UUIDs.
var tokenRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IdentityService turns the anonymous visitor cookie into the stable identity
// key used for one-vote-per-pair enforcement. No server-side session store:
// the token itself is the key.
type IdentityService struct {
	salt string
}

func NewIdentityService(salt string) *IdentityService {
	return &IdentityService{salt: salt}
}

// Identify resolves a cookie value to an identity token. A missing or
// malformed cookie fails open to a freshly minted token (a cleared cookie
// simply resets that browser's voting history); minted reports whether the
// caller must set the cookie.
func (s *IdentityService) Identify(cookieValue string) (token string, minted bool) {
	if tokenRe.MatchString(cookieValue) {
		return cookieValue, false
	}
	return uuid.NewString(), true
}

// StorageKey derives the hashed identity stored alongside votes. The raw
// cookie token never reaches the database.
func (s *IdentityService) StorageKey(token string) string {
	return hash.HashIdentity(token, s.salt)
}
