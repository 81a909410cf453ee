package auth

import (
	"strings"

	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/validation"
)

// ValidateUsername reports whether username is available. "Not found" is
// available; a hit owned by excludeID is available (self-update). On an
// internal repository error the check fails closed and reports taken.
//
// Note the deliberate asymmetry with ValidateEmail: username errors read as
// taken, email errors read as available. Preserved as-is; see DESIGN.md.
func (s *Service) ValidateUsername(username, excludeID string) bool {
	username = strings.TrimSpace(username)
	v := validation.New()
	v.Username("username", username)
	if !v.Valid() {
		return false
	}

	profile, err := s.repo().GetProfileByUsername(username)
	if err != nil {
		s.log.WithError(err).Warn("username validation failed closed")
		return false
	}
	if profile == nil {
		return true
	}
	return excludeID != "" && profile.ID == excludeID
}

// ValidateEmail reports whether email is available. The underlying lookup is
// fail-open, so a backend error reads as available rather than blocking
// sign-up on a transient failure.
func (s *Service) ValidateEmail(email, excludeID string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return false
	}

	profile, err := s.repo().GetProfileByEmail(email)
	if err != nil {
		// The repository contract already fails open; this is the same
		// policy applied one level up.
		s.log.WithError(err).WithField("email", logger.RedactEmail(email)).
			Warn("email validation failed open")
		return true
	}
	if profile == nil {
		return true
	}
	return excludeID != "" && profile.ID == excludeID
}
