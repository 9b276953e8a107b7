package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SessionSigner mints and verifies session tokens. With a secret configured
// the token is "<id>.<hmac>" so a forged cookie cannot claim another
// session's state; without one the token is the bare session ID.
type SessionSigner struct {
	secret []byte
}

// NewSessionSigner returns a signer using the given secret (may be empty).
func NewSessionSigner(secret []byte) *SessionSigner {
	return &SessionSigner{secret: secret}
}

// Issue mints a fresh session token and returns it alongside the session ID.
func (s *SessionSigner) Issue() (token, id string) {
	id = uuid.New().String()
	if len(s.secret) == 0 {
		return id, id
	}
	return fmt.Sprintf("%s.%s", id, s.signature(id)), id
}

// Verify checks a token and returns the session ID it carries.
func (s *SessionSigner) Verify(token string) (string, bool) {
	if token == "" {
		return "", false
	}

	if len(s.secret) == 0 {
		if strings.Contains(token, ".") {
			return "", false
		}
		return token, true
	}

	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", false
	}

	id, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(s.signature(id))) {
		return "", false
	}
	return id, true
}

func (s *SessionSigner) signature(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
}
