// Package cache provides an optional Redis-backed cache for profile reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Eustersshikoli/investhub-backend/internal/models"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Service wraps a Redis client with JSON marshaling and key conventions.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// NewService connects to Redis and returns the cache service.
func NewService(cfg Config, ttl time.Duration) *Service {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Service{client: client, ttl: ttl}
}

// Key builds a namespaced cache key.
func (s *Service) Key(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// GetProfile returns the cached profile for key, or (nil, false) on a miss.
func (s *Service) GetProfile(ctx context.Context, key string) (*models.UserProfile, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var profile models.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// CacheProfile stores the profile under its id key.
func (s *Service) CacheProfile(ctx context.Context, profile *models.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshaling profile for cache: %w", err)
	}
	return s.client.Set(ctx, s.Key("profile", "id", profile.ID), data, s.ttl).Err()
}

// InvalidateProfile drops the cached entry for a profile id.
func (s *Service) InvalidateProfile(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.Key("profile", "id", id)).Err()
}

// Close releases the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
