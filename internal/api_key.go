package internal

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyStatus is what storage knows about a key hash. Revoked keys stay on
// record so they are refused with 403 rather than 401.
type KeyStatus int

const (
	KeyUnknown KeyStatus = iota
	KeyRevoked
	KeyActive
)

type APIKeyRepository interface {
	Status(ctx context.Context, keyHash string) (KeyStatus, error)
}

type APIKeyValidator interface {
	Validate(ctx context.Context, rawKey string) (KeyStatus, error)
}

type hmacKeyValidator struct {
	repo   APIKeyRepository
	secret []byte
}

// NewAPIKeyValidator looks keys up by their HMAC-SHA256 under encodingKey,
// so raw keys are never stored.
func NewAPIKeyValidator(repo APIKeyRepository, encodingKey string) APIKeyValidator {
	return &hmacKeyValidator{
		repo:   repo,
		secret: []byte(strings.TrimSpace(encodingKey)),
	}
}

func (v *hmacKeyValidator) Validate(ctx context.Context, rawKey string) (KeyStatus, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return KeyUnknown, nil
	}

	status, err := v.repo.Status(ctx, HashAPIKey(rawKey, v.secret))
	if err != nil {
		return KeyUnknown, err
	}
	return status, nil
}

func HashAPIKey(rawKey string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write([]byte(rawKey))
	return hex.EncodeToString(mac.Sum(nil))
}
