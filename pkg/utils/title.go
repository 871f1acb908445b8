package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// NormalizeTitle lowercases a title and collapses runs of whitespace.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// HashTitle creates a SHA256 hash of the normalized title.
// This is useful for creating consistent, safe keys for Redis.
func HashTitle(title string) string {
	h := sha256.New()
	h.Write([]byte(NormalizeTitle(title)))
	return hex.EncodeToString(h.Sum(nil))
}
