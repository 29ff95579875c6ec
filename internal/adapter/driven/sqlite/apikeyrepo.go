package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.APIKeyStore = (*APIKeyRepo)(nil)

// APIKeyRepo is the SQLite implementation of the APIKeyStore port interface.
// Secret values are encrypted with AES-256-GCM before write and decrypted
// after read.
type APIKeyRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil when encryption is disabled.
}

// NewAPIKeyRepo creates a new APIKeyRepo. key must be 32 bytes for
// AES-256-GCM, or nil to disable key storage (all operations will return
// driven.ErrEncryptionKeyNotSet).
func NewAPIKeyRepo(db *DB, key []byte) *APIKeyRepo {
	return &APIKeyRepo{db: db, key: key}
}

// ListByUser returns all API keys owned by the given user with decrypted
// secret values. No ordering guarantee.
func (r *APIKeyRepo) ListByUser(ctx context.Context, userID string) ([]model.APIKey, error) {
	if r.key == nil {
		return nil, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT id, user_id, name, secret, project_id, created_at FROM api_keys WHERE user_id = ?`
	rows, err := r.db.Reader.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	defer rows.Close()

	var keys []model.APIKey
	for rows.Next() {
		var k model.APIKey
		var encrypted, createdAt string
		if err := rows.Scan(&k.ID, &k.UserID, &k.Name, &encrypted, &k.ProjectID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan api key: %w", err)
		}

		k.Secret, err = r.decrypt(encrypted)
		if err != nil {
			return nil, fmt.Errorf("decrypt api key %q: %w", k.ID, err)
		}

		k.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at for api key %q: %w", k.ID, err)
		}

		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api keys: %w", err)
	}

	return keys, nil
}

// Create inserts a new API key record with a server-generated id and UTC
// timestamp and returns the stored record.
func (r *APIKeyRepo) Create(ctx context.Context, key model.APIKey) (model.APIKey, error) {
	encrypted, err := r.encrypt(key.Secret)
	if err != nil {
		return model.APIKey{}, err
	}

	key.ID = uuid.NewString()
	key.CreatedAt = time.Now().UTC()

	const query = `INSERT INTO api_keys (id, user_id, name, secret, project_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.Writer.ExecContext(ctx, query,
		key.ID, key.UserID, key.Name, encrypted, key.ProjectID, key.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return model.APIKey{}, fmt.Errorf("create api key %q: %w", key.Name, err)
	}

	return key, nil
}

// Delete removes the key with the given id, scoped to the owner. Returns
// driven.ErrAPIKeyNotFound when no row matches both id and owner, so deleting
// another user's key is indistinguishable from deleting a missing one.
func (r *APIKeyRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM api_keys WHERE id = ? AND user_id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete api key %q: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete api key %q: %w", id, driven.ErrAPIKeyNotFound)
	}

	return nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *APIKeyRepo) encrypt(plaintext string) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *APIKeyRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
