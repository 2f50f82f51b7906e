package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSessionToken returns a hex-encoded token built from 32 bytes of
// cryptographically secure random data (64 characters, 256 bits of entropy).
func NewSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
