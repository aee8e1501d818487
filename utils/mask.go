package utils

import "strings"

// MaskAPIKey keeps the first and last 4 characters so logs stay greppable
// without leaking the credential.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(empty)"
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
