package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidToken covers malformed or tampered download tokens.
	ErrInvalidToken = errors.New("storage: invalid download token")
	// ErrTokenExpired is returned for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("storage: download token expired")
)

// SignedURLSigner issues and checks expiring download tokens for archived
// objects. A token is "<name>.<unix expiry>.<hex hmac>" with the name in
// unpadded base64url, so it is safe inside a URL path segment.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner returns a signer; ttl defaults to 24h.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token granting access to name until the returned time.
func (s *SignedURLSigner) Sign(name string) (string, time.Time, error) {
	if name == "" {
		return "", time.Time{}, errors.New("storage: object name required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("storage: signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(name))
	expiry := strconv.FormatInt(expiresAt.Unix(), 10)
	return strings.Join([]string{encoded, expiry, s.mac(encoded, expiry)}, "."), expiresAt, nil
}

// Verify checks the token signature and expiry and returns the object name.
func (s *SignedURLSigner) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || len(s.secret) == 0 {
		return "", ErrInvalidToken
	}
	encoded, expiry, signature := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(s.mac(encoded, expiry)), []byte(signature)) {
		return "", ErrInvalidToken
	}
	unix, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	name, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(name) == 0 {
		return "", ErrInvalidToken
	}
	if s.now().After(time.Unix(unix, 0)) {
		return "", ErrTokenExpired
	}
	return string(name), nil
}

func (s *SignedURLSigner) mac(encoded, expiry string) string {
	h := hmac.New(sha256.New, s.secret)
	_, _ = h.Write([]byte(encoded + "|" + expiry))
	return hex.EncodeToString(h.Sum(nil))
}
