package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
)

func TestSessionService_IssueAndVerify(t *testing.T) {
	svc := application.NewSessionService([]byte("test-secret"))

	token, err := svc.Issue(model.Identity{UserID: "user-1", Email: "u@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "u@example.com", identity.Email)
}

func TestSessionService_VerifyGarbage(t *testing.T) {
	svc := application.NewSessionService([]byte("test-secret"))

	_, err := svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, application.ErrInvalidSession)
}

func TestSessionService_VerifyWrongSecret(t *testing.T) {
	issuer := application.NewSessionService([]byte("secret-a"))
	verifier := application.NewSessionService([]byte("secret-b"))

	token, err := issuer.Issue(model.Identity{UserID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, application.ErrInvalidSession)
}
