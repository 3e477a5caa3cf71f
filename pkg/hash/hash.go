package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// IteratedSHA256 applies SHA256 iteratively n times to produce a derived hash.
func IteratedSHA256(input string, iterations int) string {
	data := []byte(input)
	for range iterations {
		h := sha256.Sum256(data)
		data = h[:]
	}
	return hex.EncodeToString(data)
}

// identityIterations makes stored identity keys expensive enough that a
// leaked votes table cannot be brute-forced back to cookie tokens cheaply.
const identityIterations = 5000

// HashIdentity derives the stored identity key from a cookie token. The raw
// token never reaches the votes table.
func HashIdentity(token, salt string) string {
	return IteratedSHA256(salt+token, identityIterations)
}
