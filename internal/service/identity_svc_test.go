package service

import "testing"

func TestIdentify_ValidCookie(t *testing.T) {
	svc := NewIdentityService("")
	cookie := "550e8400-e29b-41d4-a716-446655440000"

	token, minted := svc.Identify(cookie)
	if minted {
		t.Error("well-formed cookie should not mint a new token")
	}
	if token != cookie {
		t.Errorf("token = %q, want cookie value %q", token, cookie)
	}
}

func TestIdentify_MintsOnBadCookie(t *testing.T) {
	svc := NewIdentityService("")

	tests := []struct {
		name   string
		cookie string
	}{
		{"absent", ""},
		{"garbage", "not-a-token"},
		{"uppercase uuid", "550E8400-E29B-41D4-A716-446655440000"},
		{"truncated", "550e8400-e29b-41d4-a716"},
		{"injection", "'; DROP TABLE votes;--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, minted := svc.Identify(tt.cookie)
			if !minted {
				t.Error("malformed cookie should mint a new token")
			}
			if token == tt.cookie {
				t.Error("minted token should not echo the malformed cookie")
			}
			// Minted tokens must themselves round-trip as valid cookies.
			again, mintedAgain := svc.Identify(token)
			if mintedAgain || again != token {
				t.Errorf("minted token %q did not validate on the next request", token)
			}
		})
	}
}

func TestIdentify_MintedTokensDiffer(t *testing.T) {
	svc := NewIdentityService("")
	a, _ := svc.Identify("")
	b, _ := svc.Identify("")
	if a == b {
		t.Error("two minted tokens should not collide")
	}
}

func TestStorageKey(t *testing.T) {
	svc := NewIdentityService("pepper")
	token := "550e8400-e29b-41d4-a716-446655440000"

	key := svc.StorageKey(token)
	if key == token {
		t.Error("storage key must not be the raw token")
	}
	if len(key) != 64 {
		t.Errorf("storage key length = %d, want 64", len(key))
	}
	if key != svc.StorageKey(token) {
		t.Error("storage key should be deterministic")
	}

	other := NewIdentityService("different-pepper")
	if key == other.StorageKey(token) {
		t.Error("different salts should produce different storage keys")
	}
}
