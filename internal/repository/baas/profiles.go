package baas

import (
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

const tableProfiles = "user_profiles"

func (r *Repository) CreateProfile(profile *models.UserProfile) (*models.UserProfile, error) {
	r.log.WithFields(logrus.Fields{
		"op":    "CreateProfile",
		"user":  logger.RedactID(profile.ID),
		"email": logger.RedactEmail(profile.Email),
	}).Info("creating profile")

	var rows []models.UserProfile
	err := r.client.do("baas.CreateProfile", http.MethodPost, tableProfiles, nil, profile, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return profile, nil
	}
	return &rows[0], nil
}

func (r *Repository) GetProfile(id string) (*models.UserProfile, error) {
	query := url.Values{"id": {eq(id)}}
	var rows []models.UserProfile
	err := r.client.do("baas.GetProfile", http.MethodGet, tableProfiles, query, nil, &rows)
	if err != nil {
		return nil, err
	}
	// The data API signals absence as an empty result set.
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// GetProfileByUsername matches case-insensitively via the API's ilike filter.
func (r *Repository) GetProfileByUsername(username string) (*models.UserProfile, error) {
	query := url.Values{"username": {"ilike." + username}}
	var rows []models.UserProfile
	err := r.client.do("baas.GetProfileByUsername", http.MethodGet, tableProfiles, query, nil, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// GetProfileByEmail is fail-open: any backend error reads as "no profile".
func (r *Repository) GetProfileByEmail(email string) (*models.UserProfile, error) {
	query := url.Values{"email": {eq(email)}}
	var rows []models.UserProfile
	err := r.client.do("baas.GetProfileByEmail", http.MethodGet, tableProfiles, query, nil, &rows)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"op":    "GetProfileByEmail",
			"email": logger.RedactEmail(email),
		}).WithError(err).Warn("profile lookup failed, treating as absent")
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *Repository) UpdateProfile(id string, update models.ProfileUpdate) (*models.UserProfile, error) {
	fields := update.Fields()

	r.log.WithFields(logrus.Fields{
		"op":     "UpdateProfile",
		"user":   logger.RedactID(id),
		"fields": len(fields),
	}).Info("updating profile")

	if len(fields) == 0 {
		profile, err := r.GetProfile(id)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, repository.WrapError(repository.ErrNotFound, "baas.UpdateProfile", nil)
		}
		return profile, nil
	}

	query := url.Values{"id": {eq(id)}}
	var rows []models.UserProfile
	err := r.client.do("baas.UpdateProfile", http.MethodPatch, tableProfiles, query, fields, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.WrapError(repository.ErrNotFound, "baas.UpdateProfile", nil)
	}
	return &rows[0], nil
}
