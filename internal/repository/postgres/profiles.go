package postgres

import (
	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

func (r *Repository) CreateProfile(profile *models.UserProfile) (*models.UserProfile, error) {
	r.log.WithFields(logrus.Fields{
		"op":    "CreateProfile",
		"user":  logger.RedactID(profile.ID),
		"email": logger.RedactEmail(profile.Email),
	}).Info("creating profile")

	if err := r.db.Create(profile).Error; err != nil {
		return nil, r.wrap("postgres.CreateProfile", err)
	}
	return profile, nil
}

func (r *Repository) GetProfile(id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.wrap("postgres.GetProfile", err)
	}
	return &profile, nil
}

// GetProfileByUsername matches case-insensitively; the uniqueness invariant
// on usernames is case-insensitive.
func (r *Repository) GetProfileByUsername(username string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.Where("LOWER(username) = LOWER(?)", username).First(&profile).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.wrap("postgres.GetProfileByUsername", err)
	}
	return &profile, nil
}

// GetProfileByEmail is fail-open: a backend error reads as "no profile" so
// that email validation never blocks sign-up on a transient failure. The
// error is still logged.
func (r *Repository) GetProfileByEmail(email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.Where("email = ?", email).First(&profile).Error
	if err != nil {
		if !notFound(err) {
			r.log.WithFields(logrus.Fields{
				"op":    "GetProfileByEmail",
				"email": logger.RedactEmail(email),
			}).WithError(err).Warn("profile lookup failed, treating as absent")
		}
		return nil, nil
	}
	return &profile, nil
}

// UpdateProfile writes only the supplied fields. The column list is built
// dynamically and bound as parameters; values never reach the SQL text.
func (r *Repository) UpdateProfile(id string, update models.ProfileUpdate) (*models.UserProfile, error) {
	fields := update.Fields()

	r.log.WithFields(logrus.Fields{
		"op":     "UpdateProfile",
		"user":   logger.RedactID(id),
		"fields": len(fields),
	}).Info("updating profile")

	if len(fields) > 0 {
		res := r.db.Model(&models.UserProfile{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, r.wrap("postgres.UpdateProfile", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, repository.WrapError(repository.ErrNotFound, "postgres.UpdateProfile", nil)
		}
	}

	profile, err := r.GetProfile(id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, repository.WrapError(repository.ErrNotFound, "postgres.UpdateProfile", nil)
	}
	return profile, nil
}
