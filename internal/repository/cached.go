package repository

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository/cache"
)

// WithProfileCache decorates a repository with a Redis read-through cache for
// profile-by-id lookups. Profile writes invalidate the entry; cache failures
// are logged and otherwise invisible to callers. Every other operation passes
// straight through.
func WithProfileCache(inner Repository, cacheSvc *cache.Service, log *logrus.Logger) Repository {
	return &cachedRepository{Repository: inner, cache: cacheSvc, log: log}
}

type cachedRepository struct {
	Repository
	cache *cache.Service
	log   *logrus.Logger
}

func (c *cachedRepository) GetProfile(id string) (*models.UserProfile, error) {
	ctx := context.Background()

	key := c.cache.Key("profile", "id", id)
	if profile, ok := c.cache.GetProfile(ctx, key); ok {
		return profile, nil
	}

	profile, err := c.Repository.GetProfile(id)
	if err != nil || profile == nil {
		return profile, err
	}

	if err := c.cache.CacheProfile(ctx, profile); err != nil {
		c.log.WithError(err).WithField("user", logger.RedactID(id)).
			Warn("failed to cache profile")
	}
	return profile, nil
}

func (c *cachedRepository) UpdateProfile(id string, update models.ProfileUpdate) (*models.UserProfile, error) {
	profile, err := c.Repository.UpdateProfile(id, update)
	if err != nil {
		return nil, err
	}
	c.invalidate(id)
	return profile, nil
}

func (c *cachedRepository) CreateProfile(profile *models.UserProfile) (*models.UserProfile, error) {
	created, err := c.Repository.CreateProfile(profile)
	if err != nil {
		return nil, err
	}
	c.invalidate(created.ID)
	return created, nil
}

func (c *cachedRepository) invalidate(id string) {
	if err := c.cache.InvalidateProfile(context.Background(), id); err != nil {
		c.log.WithError(err).WithField("user", logger.RedactID(id)).
			Warn("failed to invalidate profile cache")
	}
}
