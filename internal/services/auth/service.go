package auth

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eustersshikoli/investhub-backend/internal/config"
	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
	"github.com/Eustersshikoli/investhub-backend/internal/repository/baas"
	"github.com/Eustersshikoli/investhub-backend/internal/utils"
	"github.com/Eustersshikoli/investhub-backend/internal/validation"
)

const defaultCurrency = "USD"

// Backends is the slice of the backend selector this service consumes.
// Satisfied by *backend.Selector.
type Backends interface {
	Active() repository.Repository
	ActiveKind() string
	AuthClient() *baas.AuthClient
	Config() *config.Config
}

// Service implements sign-up, sign-in, admin credential management,
// uniqueness validation and Telegram identity linking uniformly across
// backends. In Postgres mode it owns password hashing itself; in managed
// mode the platform's identity service does, and a password is never hashed
// twice or persisted outside that service.
type Service struct {
	backends   Backends
	log        *logrus.Logger
	bcryptCost int
}

// NewService builds the auth service over the backend selector.
func NewService(backends Backends, log *logrus.Logger) *Service {
	cost := backends.Config().BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{backends: backends, log: log, bcryptCost: cost}
}

func (s *Service) repo() repository.Repository { return s.backends.Active() }

func (s *Service) managedMode() bool {
	return s.backends.ActiveKind() == config.BackendBaaS
}

// SignUpInput carries the registration request.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Username string
	Phone    string
	Country  string
}

// SignUpResult reports a completed registration. Profile may be nil when
// profile provisioning failed; the identity still exists and sign-up
// succeeded.
type SignUpResult struct {
	UserID  string
	Email   string
	Profile *models.UserProfile
}

// SignUp registers a new account. Identity creation is the only step whose
// failure aborts the sign-up; profile and balance provisioning are
// best-effort and merely logged when they fail.
func (s *Service) SignUp(in SignUpInput) (*SignUpResult, error) {
	v := validation.New()
	v.Required("email", in.Email)
	v.Email("email", in.Email)
	v.Password("password", in.Password)
	if in.Username != "" {
		v.Username("username", in.Username)
	}
	if !v.Valid() {
		switch {
		case v.Has("password"):
			return nil, ErrWeakPassword
		case v.Has("email"):
			return nil, ErrInvalidEmail
		}
		return nil, ErrInvalidUsername
	}

	userID, err := s.createIdentity(in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	result := &SignUpResult{UserID: userID, Email: in.Email}

	profile := &models.UserProfile{ID: userID, Email: in.Email}
	if in.FullName != "" {
		profile.FullName = &in.FullName
	}
	if in.Username != "" {
		profile.Username = &in.Username
	}
	if in.Phone != "" {
		profile.Phone = &in.Phone
	}
	if in.Country != "" {
		profile.Country = &in.Country
	}

	created, err := s.repo().CreateProfile(profile)
	if err != nil {
		s.log.WithError(err).WithField("user", logger.RedactID(userID)).
			Warn("profile provisioning failed after identity creation")
	} else {
		result.Profile = created
	}

	if _, err := s.repo().CreateBalance(userID, 0, defaultCurrency); err != nil {
		s.log.WithError(err).WithField("user", logger.RedactID(userID)).
			Warn("balance provisioning failed after identity creation")
	}

	return result, nil
}

// createIdentity creates the auth record on whichever backend is active and
// returns the new identity id. A duplicate email surfaces as ErrEmailTaken.
func (s *Service) createIdentity(email, password string) (string, error) {
	if s.managedMode() {
		client := s.backends.AuthClient()
		if client == nil {
			return "", ErrMissingBaaSAuth
		}
		id, err := client.SignUp(email, password)
		if err != nil {
			if errors.Is(err, repository.ErrConstraintViolation) {
				return "", ErrEmailTaken
			}
			return "", err
		}
		return id, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	created, err := s.repo().CreateAuthUser(&models.AuthUser{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, repository.ErrConstraintViolation) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return created.ID, nil
}

// SignInResult carries an authenticated session.
type SignInResult struct {
	UserID       string
	Email        string
	Role         string
	AccessToken  string
	RefreshToken string
}

// SignIn authenticates an account. Any mismatch or absence returns
// ErrInvalidCredentials without revealing which half failed.
func (s *Service) SignIn(email, password string) (*SignInResult, error) {
	if s.managedMode() {
		return s.signInManaged(email, password)
	}

	user, err := s.repo().GetAuthUserByEmail(email)
	if err != nil || user == nil {
		s.log.WithField("email", logger.RedactEmail(email)).Info("sign-in rejected")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.WithField("user", logger.RedactID(user.ID)).Info("sign-in rejected")
		return nil, ErrInvalidCredentials
	}

	if err := s.repo().TouchLastSignIn(user.ID); err != nil {
		s.log.WithError(err).WithField("user", logger.RedactID(user.ID)).
			Warn("failed to record sign-in timestamp")
	}

	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   "user",
	})
	if err != nil {
		return nil, err
	}

	return &SignInResult{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         "user",
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Service) signInManaged(email, password string) (*SignInResult, error) {
	client := s.backends.AuthClient()
	if client == nil {
		return nil, ErrMissingBaaSAuth
	}

	session, err := client.SignInWithPassword(email, password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return &SignInResult{
		UserID:      session.UserID,
		Email:       session.Email,
		Role:        "user",
		AccessToken: session.AccessToken,
	}, nil
}
