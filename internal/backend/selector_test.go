package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eustersshikoli/investhub-backend/internal/config"
	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

func TestSelectorWithNothingConfigured(t *testing.T) {
	cfg := &config.Config{}
	s := NewSelector(cfg, logger.New("error"))
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, "", s.ActiveKind())
	assert.False(t, s.Postgres().Live())
	assert.False(t, s.BaaS().Live())

	// Nothing selected: the active repository is a stub, not a nil pointer.
	_, err := s.Active().GetBalance("user", "USD")
	require.ErrorIs(t, err, repository.ErrNotConfigured)

	require.NoError(t, s.Migrate(), "migration is a no-op without a SQL backend")
}

func TestSelectorActivatesManagedBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		BaaSURL:     server.URL,
		BaaSAnonKey: "anon-key",
		DataBackend: config.BackendBaaS,
	}
	s := NewSelector(cfg, logger.New("error"))
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, config.BackendBaaS, s.ActiveKind())
	require.True(t, s.BaaS().Live())
	require.NotNil(t, s.AuthClient())

	profile, err := s.Active().GetProfile("some-id")
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSelectorRejectsDisabledTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		BaaSURL:     server.URL,
		BaaSAnonKey: "anon-key",
		DataBackend: config.BackendBaaS,
	}
	s := NewSelector(cfg, logger.New("error"))
	t.Cleanup(func() { _ = s.Close() })

	require.Equal(t, config.BackendBaaS, s.ActiveKind())

	err := s.Use(config.BackendPostgres)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotConfigured)
	assert.Equal(t, config.BackendBaaS, s.ActiveKind(), "failed toggle leaves the prior selection")

	err = s.Use("mystery")
	require.Error(t, err)
	assert.Equal(t, config.BackendBaaS, s.ActiveKind())
}

func TestSelectorSurvivesBadInitialSelection(t *testing.T) {
	cfg := &config.Config{DataBackend: config.BackendPostgres}
	s := NewSelector(cfg, logger.New("error"))
	t.Cleanup(func() { _ = s.Close() })

	assert.Equal(t, "", s.ActiveKind())
	require.Error(t, s.Postgres().Err())
}
