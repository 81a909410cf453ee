package auth

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
	"github.com/Eustersshikoli/investhub-backend/internal/utils"
	"github.com/Eustersshikoli/investhub-backend/internal/validation"
)

// CreateAdminUser provisions or rotates admin credentials. Re-issuing for an
// existing email updates the stored hash and role instead of failing, so the
// same call serves both bootstrap and rotation.
//
// Postgres mode writes the identity row and the admin role row together. The
// managed backend has no admin-role table: admin status there is membership
// in the configured allow-list, and the identity itself is created through
// the platform's auth service (an existing identity keeps its password; the
// platform does not allow anonymous-key rotation).
func (s *Service) CreateAdminUser(username, email, password, role string) (*models.AdminUser, error) {
	if !models.ValidAdminRole(role) {
		return nil, ErrInvalidRole
	}
	v := validation.New()
	v.Email("email", email)
	v.Password("password", password)
	if !v.Valid() {
		if v.Has("password") {
			return nil, ErrWeakPassword
		}
		return nil, ErrInvalidEmail
	}

	if s.managedMode() {
		return s.createAdminManaged(username, email, password, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &models.AdminUser{
		Username: username,
		Email:    email,
		Role:     role,
	}
	return s.repo().UpsertAdminUser(admin, string(hash))
}

func (s *Service) createAdminManaged(username, email, password, role string) (*models.AdminUser, error) {
	if !s.backends.Config().IsAdminAllowed(email) {
		return nil, ErrNotAuthorized
	}
	client := s.backends.AuthClient()
	if client == nil {
		return nil, ErrMissingBaaSAuth
	}

	if _, err := client.SignUp(email, password); err != nil {
		// An already-registered identity is fine: allow-list membership,
		// not the identity record, is what grants the role here.
		if !errors.Is(err, repository.ErrConstraintViolation) {
			return nil, err
		}
		s.log.WithField("email", logger.RedactEmail(email)).
			Info("admin identity already exists on managed backend; password unchanged")
	}

	return &models.AdminUser{
		Username: username,
		Email:    email,
		Role:     role,
		Active:   true,
	}, nil
}

// AdminSession is a verified administrative session.
type AdminSession struct {
	Admin        *models.AdminUser
	AccessToken  string
	RefreshToken string
}

// VerifyAdminCredentials authenticates an admin. Postgres mode joins the
// identity and admin-role records and requires the active flag; managed mode
// authenticates normally, then checks allow-list membership and immediately
// signs the session back out when that check fails, so no
// authenticated-but-unauthorized session is left standing.
func (s *Service) VerifyAdminCredentials(email, password string) (*AdminSession, error) {
	if s.managedMode() {
		return s.verifyAdminManaged(email, password)
	}

	admin, authUser, err := s.repo().GetAdminByEmail(email)
	if err != nil || admin == nil || authUser == nil {
		s.log.WithField("email", logger.RedactEmail(email)).Info("admin sign-in rejected")
		return nil, ErrInvalidCredentials
	}
	if !admin.Active {
		s.log.WithFields(logrus.Fields{
			"email": logger.RedactEmail(email),
		}).Info("admin sign-in rejected: account inactive")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(authUser.PasswordHash), []byte(password)); err != nil {
		s.log.WithField("email", logger.RedactEmail(email)).Info("admin sign-in rejected")
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID: authUser.ID,
		Email:  authUser.Email,
		Role:   admin.Role,
	})
	if err != nil {
		return nil, err
	}

	return &AdminSession{Admin: admin, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) verifyAdminManaged(email, password string) (*AdminSession, error) {
	client := s.backends.AuthClient()
	if client == nil {
		return nil, ErrMissingBaaSAuth
	}

	session, err := client.SignInWithPassword(email, password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !s.backends.Config().IsAdminAllowed(email) {
		if err := client.SignOut(session.AccessToken); err != nil {
			s.log.WithError(err).WithField("email", logger.RedactEmail(email)).
				Warn("failed to revoke unauthorized admin session")
		}
		return nil, ErrNotAuthorized
	}

	return &AdminSession{
		Admin: &models.AdminUser{
			AuthUserID: session.UserID,
			Email:      session.Email,
			Role:       models.AdminRoleAdmin,
			Active:     true,
		},
		AccessToken: session.AccessToken,
	}, nil
}
