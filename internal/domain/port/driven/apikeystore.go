package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

// ErrAPIKeyNotFound is returned when an API key id does not exist for the
// requesting owner. Deleting someone else's key and deleting a missing key
// are indistinguishable on purpose.
var ErrAPIKeyNotFound = errors.New("api key not found")

// ErrEncryptionKeyNotSet is returned by APIKeyStore operations when
// KEYPANEL_SECRET_KEY has not been configured.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set KEYPANEL_SECRET_KEY")

// APIKeyStore defines the driven port for API key persistence. Secret values
// are encrypted by the adapter; this interface operates on plaintext at the
// domain boundary.
type APIKeyStore interface {
	// ListByUser returns all keys owned by the given user. No ordering guarantee.
	ListByUser(ctx context.Context, userID string) ([]model.APIKey, error)

	// Create inserts a new key record and returns it with the adapter-populated
	// fields echoed back. Returns ErrEncryptionKeyNotSet if the adapter was
	// constructed without an encryption key.
	Create(ctx context.Context, key model.APIKey) (model.APIKey, error)

	// Delete removes the key with the given id, scoped to the owner. Returns
	// ErrAPIKeyNotFound if no such key belongs to the owner.
	Delete(ctx context.Context, userID, id string) error
}
