package model

import (
	"strings"
	"time"
)

// APIKey holds a named Google Cloud API key owned by one user. Keys are
// created and deleted, never edited in place; replacing a key means deleting
// it and creating a new record.
type APIKey struct {
	ID        string
	UserID    string
	Name      string
	Secret    string
	ProjectID string
	CreatedAt time.Time
}

// MaskSecret reduces a secret value to a masked suffix for display.
// The full secret is never rendered; only the last four characters survive.
func MaskSecret(secret string) string {
	const visible = 4
	if len(secret) <= visible {
		return strings.Repeat("*", len(secret))
	}
	return "****" + secret[len(secret)-visible:]
}
