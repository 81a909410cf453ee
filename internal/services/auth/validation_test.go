package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eustersshikoli/investhub-backend/internal/models"
)

func TestValidateUsername(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	result, err := svc.SignUp(SignUpInput{
		Email:    "owner@example.com",
		Password: "hunter2hunter2",
		Username: "Taken",
	})
	require.NoError(t, err)

	t.Run("unused name is available", func(t *testing.T) {
		assert.True(t, svc.ValidateUsername("fresh", ""))
	})

	t.Run("taken name is unavailable, case-insensitively", func(t *testing.T) {
		assert.False(t, svc.ValidateUsername("taken", ""))
		assert.False(t, svc.ValidateUsername("TAKEN", ""))
	})

	t.Run("owner updating their own record keeps their name", func(t *testing.T) {
		assert.True(t, svc.ValidateUsername("Taken", result.UserID))
	})

	t.Run("empty name is never available", func(t *testing.T) {
		assert.False(t, svc.ValidateUsername("  ", ""))
	})
}

// The asymmetry is deliberate: username checks fail closed, email checks fail
// open. Both directions are pinned here.
func TestValidationFailureAsymmetry(t *testing.T) {
	repo := newFakeRepo()
	repo.usernameErr = errors.New("backend down")
	repo.emailErr = errors.New("backend down")
	svc := newTestService(t, repo)

	assert.False(t, svc.ValidateUsername("anything", ""), "username validation fails closed")
	assert.True(t, svc.ValidateEmail("anything@example.com", ""), "email validation fails open")
}

func TestValidateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	result, err := svc.SignUp(SignUpInput{Email: "owner@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	assert.True(t, svc.ValidateEmail("new@example.com", ""))
	assert.False(t, svc.ValidateEmail("owner@example.com", ""))
	assert.True(t, svc.ValidateEmail("owner@example.com", result.UserID))
}

func TestLinkTelegram(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	result, err := svc.SignUp(SignUpInput{Email: "tg@example.com", Password: "hunter2hunter2"})
	require.NoError(t, err)

	profile, err := svc.LinkTelegram(result.UserID, &models.TelegramUser{
		ID:        42,
		FirstName: "Tele",
		Username:  "gram",
	})
	require.NoError(t, err)
	require.NotNil(t, profile.TelegramID)
	assert.Equal(t, int64(42), *profile.TelegramID)

	// Relinking overwrites the prior link silently.
	profile, err = svc.LinkTelegram(result.UserID, &models.TelegramUser{
		ID:        99,
		FirstName: "Other",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99), *profile.TelegramID)
}
