package postgres

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

func (r *Repository) CreateAuthUser(user *models.AuthUser) (*models.AuthUser, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	r.log.WithFields(logrus.Fields{
		"op":    "CreateAuthUser",
		"user":  logger.RedactID(user.ID),
		"email": logger.RedactEmail(user.Email),
	}).Info("creating identity")

	if err := r.db.Create(user).Error; err != nil {
		return nil, r.wrap("postgres.CreateAuthUser", err)
	}
	return user, nil
}

// GetAuthUserByEmail excludes soft-deleted identities.
func (r *Repository) GetAuthUserByEmail(email string) (*models.AuthUser, error) {
	var user models.AuthUser
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, r.wrap("postgres.GetAuthUserByEmail", err)
	}
	return &user, nil
}

func (r *Repository) UpdateAuthUserPassword(id, passwordHash string) error {
	r.log.WithFields(logrus.Fields{
		"op":   "UpdateAuthUserPassword",
		"user": logger.RedactID(id),
	}).Info("rotating password hash")

	res := r.db.Model(&models.AuthUser{}).Where("id = ?", id).
		Update("password_hash", passwordHash)
	if res.Error != nil {
		return r.wrap("postgres.UpdateAuthUserPassword", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.WrapError(repository.ErrNotFound, "postgres.UpdateAuthUserPassword", nil)
	}
	return nil
}

func (r *Repository) TouchLastSignIn(id string) error {
	res := r.db.Model(&models.AuthUser{}).Where("id = ?", id).
		Update("last_sign_in_at", time.Now())
	if res.Error != nil {
		return r.wrap("postgres.TouchLastSignIn", res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.WrapError(repository.ErrNotFound, "postgres.TouchLastSignIn", nil)
	}
	return nil
}

// UpsertAdminUser rotates admin credentials idempotently. The identity row
// and the admin role row are written in one transaction so a re-issue updates
// both or neither.
func (r *Repository) UpsertAdminUser(admin *models.AdminUser, passwordHash string) (*models.AdminUser, error) {
	r.log.WithFields(logrus.Fields{
		"op":    "UpsertAdminUser",
		"email": logger.RedactEmail(admin.Email),
		"role":  admin.Role,
	}).Info("upserting admin credentials")

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var auth models.AuthUser
		err := tx.Where("email = ?", admin.Email).First(&auth).Error
		switch {
		case notFound(err):
			auth = models.AuthUser{
				ID:           uuid.NewString(),
				Email:        admin.Email,
				PasswordHash: passwordHash,
			}
			if err := tx.Create(&auth).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&auth).Update("password_hash", passwordHash).Error; err != nil {
				return err
			}
		}
		admin.AuthUserID = auth.ID

		var existing models.AdminUser
		err = tx.Where("email = ?", admin.Email).First(&existing).Error
		switch {
		case notFound(err):
			admin.Active = true
			return tx.Create(admin).Error
		case err != nil:
			return err
		default:
			updates := map[string]interface{}{
				"auth_user_id": auth.ID,
				"username":     admin.Username,
				"role":         admin.Role,
				"active":       true,
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
			admin.ID = existing.ID
			admin.Active = true
			return nil
		}
	})
	if err != nil {
		return nil, r.wrap("postgres.UpsertAdminUser", err)
	}
	return admin, nil
}

func (r *Repository) GetAdminByEmail(email string) (*models.AdminUser, *models.AuthUser, error) {
	var admin models.AdminUser
	err := r.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		if notFound(err) {
			return nil, nil, nil
		}
		return nil, nil, r.wrap("postgres.GetAdminByEmail", err)
	}

	var auth models.AuthUser
	err = r.db.Where("id = ?", admin.AuthUserID).First(&auth).Error
	if err != nil {
		if notFound(err) {
			return &admin, nil, nil
		}
		return nil, nil, r.wrap("postgres.GetAdminByEmail", err)
	}
	return &admin, &auth, nil
}
