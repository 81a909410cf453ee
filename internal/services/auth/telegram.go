package auth

import (
	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
)

// LinkTelegram merges an already-verified Telegram login payload into the
// profile. The merge is idempotent and silently overwrites any prior link.
// No check is made against other profiles holding the same Telegram id; see
// DESIGN.md for the flagged gap.
func (s *Service) LinkTelegram(userID string, tg *models.TelegramUser) (*models.UserProfile, error) {
	s.log.WithFields(logrus.Fields{
		"user":     logger.RedactID(userID),
		"telegram": tg.ID,
	}).Info("linking telegram identity")

	update := models.ProfileUpdate{
		TelegramID:        &tg.ID,
		TelegramFirstName: &tg.FirstName,
	}
	if tg.LastName != "" {
		update.TelegramLastName = &tg.LastName
	}
	if tg.Username != "" {
		update.TelegramUsername = &tg.Username
	}
	if tg.PhotoURL != "" {
		update.TelegramPhotoURL = &tg.PhotoURL
	}

	return s.repo().UpdateProfile(userID, update)
}
