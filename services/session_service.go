package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/tom73737/non-zero-days-app-jkqfrv/config"
	"github.com/tom73737/non-zero-days-app-jkqfrv/models"
)

const defaultTokenCacheLen = 4096

// SessionService verifies HMAC-signed session tokens minted by the auth
// provider and resolves them to a trusted user ID. Verified tokens are
// cached so hot clients skip repeated signature checks; expiry is still
// enforced on every cache hit.
type SessionService struct {
	key   []byte
	ttl   time.Duration
	cache *lru.Cache
}

func NewSessionService(cfg config.AuthConfig) (*SessionService, error) {
	if cfg.SessionKey == "" {
		return nil, fmt.Errorf("session key not configured")
	}

	cacheLen := cfg.TokenCacheLen
	if cacheLen <= 0 {
		cacheLen = defaultTokenCacheLen
	}
	cache, err := lru.New(cacheLen)
	if err != nil {
		return nil, fmt.Errorf("failed to create token cache: %w", err)
	}

	ttl := time.Duration(cfg.SessionTTL) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &SessionService{
		key:   []byte(cfg.SessionKey),
		ttl:   ttl,
		cache: cache,
	}, nil
}

// IssueToken mints a signed session token for userID. In production the
// auth provider holds the same key and mints tokens itself; the server
// only issues them from the debug-mode endpoint.
func (s *SessionService) IssueToken(userID string) (string, error) {
	session := models.UserSession{
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	return s.signData(data), nil
}

// VerifyToken validates the token signature and expiry and returns the
// embedded session.
func (s *SessionService) VerifyToken(token string) (*models.UserSession, error) {
	if cached, ok := s.cache.Get(token); ok {
		session := cached.(*models.UserSession)
		if time.Now().After(session.ExpiresAt) {
			s.cache.Remove(token)
			return nil, fmt.Errorf("session expired")
		}
		return session, nil
	}

	data, err := s.verifyAndDecodeData(token)
	if err != nil {
		return nil, fmt.Errorf("invalid session signature: %w", err)
	}

	var session models.UserSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, fmt.Errorf("session expired")
	}

	s.cache.Add(token, &session)
	return &session, nil
}

// signData signs data using HMAC-SHA256 and base64-encodes data+signature.
func (s *SessionService) signData(data []byte) string {
	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	signature := h.Sum(nil)

	combined := append(data, signature...)
	return base64.URLEncoding.EncodeToString(combined)
}

// verifyAndDecodeData verifies the signature and returns the original data.
func (s *SessionService) verifyAndDecodeData(encoded string) ([]byte, error) {
	combined, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode token: %w", err)
	}

	if len(combined) < sha256.Size {
		return nil, fmt.Errorf("invalid token length")
	}

	data := combined[:len(combined)-sha256.Size]
	receivedSignature := combined[len(combined)-sha256.Size:]

	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	expectedSignature := h.Sum(nil)

	if !hmac.Equal(receivedSignature, expectedSignature) {
		return nil, fmt.Errorf("signature verification failed")
	}

	return data, nil
}
