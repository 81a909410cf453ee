package repository

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository/cache"
)

// countingRepo records lookups so tests can tell a cache hit from a pass-through.
type countingRepo struct {
	Repository
	profiles map[string]*models.UserProfile
	gets     int
}

func (c *countingRepo) GetProfile(id string) (*models.UserProfile, error) {
	c.gets++
	return c.profiles[id], nil
}

func (c *countingRepo) CreateProfile(profile *models.UserProfile) (*models.UserProfile, error) {
	c.profiles[profile.ID] = profile
	return profile, nil
}

func (c *countingRepo) UpdateProfile(id string, update models.ProfileUpdate) (*models.UserProfile, error) {
	profile, ok := c.profiles[id]
	if !ok {
		return nil, WrapError(ErrNotFound, "test.UpdateProfile", nil)
	}
	if update.FullName != nil {
		profile.FullName = update.FullName
	}
	return profile, nil
}

func newCachedRepo(t *testing.T) (Repository, *countingRepo) {
	t.Helper()

	mr := miniredis.RunT(t)
	svc := cache.NewService(cache.Config{Addr: mr.Addr()}, time.Minute)
	t.Cleanup(func() { _ = svc.Close() })

	inner := &countingRepo{profiles: make(map[string]*models.UserProfile)}
	return WithProfileCache(inner, svc, logger.New("error")), inner
}

func TestCachedProfileReadThrough(t *testing.T) {
	repo, inner := newCachedRepo(t)

	_, err := repo.CreateProfile(&models.UserProfile{ID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)

	first, err := repo.GetProfile("u1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, inner.gets)

	second, err := repo.GetProfile("u1")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, 1, inner.gets, "second read is served from cache")
	assert.Equal(t, first.Email, second.Email)
}

func TestCachedProfileMissIsNotCached(t *testing.T) {
	repo, inner := newCachedRepo(t)

	profile, err := repo.GetProfile("ghost")
	require.NoError(t, err)
	assert.Nil(t, profile)

	_, _ = repo.GetProfile("ghost")
	assert.Equal(t, 2, inner.gets, "absent profiles always hit the backend")
}

func TestCachedProfileInvalidationOnUpdate(t *testing.T) {
	repo, inner := newCachedRepo(t)

	name := "Before"
	_, err := repo.CreateProfile(&models.UserProfile{ID: "u1", Email: "u1@example.com", FullName: &name})
	require.NoError(t, err)

	_, err = repo.GetProfile("u1")
	require.NoError(t, err)

	after := "After"
	_, err = repo.UpdateProfile("u1", models.ProfileUpdate{FullName: &after})
	require.NoError(t, err)

	fresh, err := repo.GetProfile("u1")
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, "After", *fresh.FullName, "update drops the stale entry")
	assert.Equal(t, 2, inner.gets)
}
