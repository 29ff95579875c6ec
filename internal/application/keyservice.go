package application

import (
	"context"

	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// KeyService implements the credential-store operations over the APIKeyStore
// port. Keys are never edited in place; replacing one means delete and
// recreate.
type KeyService struct {
	store driven.APIKeyStore
}

// NewKeyService creates a KeyService backed by the given store.
func NewKeyService(store driven.APIKeyStore) *KeyService {
	return &KeyService{store: store}
}

// List returns all keys owned by the user.
func (s *KeyService) List(ctx context.Context, userID string) ([]model.APIKey, error) {
	return s.store.ListByUser(ctx, userID)
}

// Create validates and stores a new key record. Every field is required;
// a missing one yields a *ValidationError.
func (s *KeyService) Create(ctx context.Context, userID, name, secret, projectID string) (model.APIKey, error) {
	switch {
	case name == "":
		return model.APIKey{}, &ValidationError{Field: "name"}
	case secret == "":
		return model.APIKey{}, &ValidationError{Field: "key"}
	case projectID == "":
		return model.APIKey{}, &ValidationError{Field: "projectId"}
	}

	return s.store.Create(ctx, model.APIKey{
		UserID:    userID,
		Name:      name,
		Secret:    secret,
		ProjectID: projectID,
	})
}

// Delete removes the key with the given id if the user owns it. Returns
// driven.ErrAPIKeyNotFound otherwise; the store is left unchanged.
func (s *KeyService) Delete(ctx context.Context, userID, id string) error {
	return s.store.Delete(ctx, userID, id)
}
