// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"os"
)

// GoogleMode selects which GoogleClient implementation the composition root wires.
type GoogleMode string

const (
	// GoogleModeLive builds clients backed by the real Google API SDK.
	GoogleModeLive GoogleMode = "live"
	// GoogleModeMock builds clients returning canned data, for local
	// development without live credentials.
	GoogleModeMock GoogleMode = "mock"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr    string
	DBPath        string
	SecretKey     []byte // 32-byte AES-256 key for API key encryption; nil disables key storage.
	SessionSecret []byte // HMAC secret for session tokens.
	GoogleMode    GoogleMode
	DevLogin      bool

	// Fixed targets used by the read and write probes.
	TestSpreadsheetID string
	TestEmailAddress  string
}

// Load reads configuration from environment variables and returns a validated
// Config. KEYPANEL_SESSION_SECRET is required; the app fails fast without it.
// KEYPANEL_SECRET_KEY (64 hex chars) is optional; without it API key storage
// is disabled and the store returns driven.ErrEncryptionKeyNotSet.
// Optional variables with defaults: KEYPANEL_LISTEN_ADDR (127.0.0.1:8080),
// KEYPANEL_DB_PATH (keypanel.db), KEYPANEL_GOOGLE_MODE (live),
// KEYPANEL_DEV_LOGIN (off), KEYPANEL_TEST_SPREADSHEET_ID, KEYPANEL_TEST_EMAIL.
func Load() (*Config, error) {
	sessionSecret := os.Getenv("KEYPANEL_SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("KEYPANEL_SESSION_SECRET is required")
	}

	var secretKey []byte
	if v := os.Getenv("KEYPANEL_SECRET_KEY"); v != "" {
		decoded, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("KEYPANEL_SECRET_KEY is not valid hex: %w", err)
		}
		if len(decoded) != 32 {
			return nil, fmt.Errorf("KEYPANEL_SECRET_KEY must decode to 32 bytes, got %d", len(decoded))
		}
		secretKey = decoded
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("KEYPANEL_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "keypanel.db"
	if v, ok := os.LookupEnv("KEYPANEL_DB_PATH"); ok {
		dbPath = v
	}

	mode := GoogleModeLive
	if v, ok := os.LookupEnv("KEYPANEL_GOOGLE_MODE"); ok {
		switch GoogleMode(v) {
		case GoogleModeLive, GoogleModeMock:
			mode = GoogleMode(v)
		default:
			return nil, fmt.Errorf("KEYPANEL_GOOGLE_MODE must be %q or %q, got %q", GoogleModeLive, GoogleModeMock, v)
		}
	}

	devLogin := false
	if v, ok := os.LookupEnv("KEYPANEL_DEV_LOGIN"); ok {
		devLogin = v == "1" || v == "true"
	}

	spreadsheetID := "keypanel-test-spreadsheet"
	if v, ok := os.LookupEnv("KEYPANEL_TEST_SPREADSHEET_ID"); ok {
		spreadsheetID = v
	}

	testEmail := "keypanel-test@example.com"
	if v, ok := os.LookupEnv("KEYPANEL_TEST_EMAIL"); ok {
		testEmail = v
	}

	return &Config{
		ListenAddr:        listenAddr,
		DBPath:            dbPath,
		SecretKey:         secretKey,
		SessionSecret:     []byte(sessionSecret),
		GoogleMode:        mode,
		DevLogin:          devLogin,
		TestSpreadsheetID: spreadsheetID,
		TestEmailAddress:  testEmail,
	}, nil
}
