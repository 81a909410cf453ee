package baas

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
)

// Repository is the managed-backend implementation of repository.Repository.
type Repository struct {
	client *Client
	log    *logrus.Logger
}

// New builds the repository over an existing client.
func New(client *Client, log *logrus.Logger) *Repository {
	return &Repository{client: client, log: log}
}

// Client exposes the underlying REST client, shared with the identity client.
func (r *Repository) Client() *Client { return r.client }

var errIdentityManaged = errors.New("identity tables are owned by the managed service")

// The identity and admin-role tables exist only under the Postgres backend.
// In managed mode identity belongs to the platform's own auth service, so
// these operations are permanently unavailable rather than failures of a
// live resource.

func (r *Repository) CreateAuthUser(*models.AuthUser) (*models.AuthUser, error) {
	return nil, repository.WrapError(repository.ErrNotConfigured, "baas.CreateAuthUser", errIdentityManaged)
}

func (r *Repository) GetAuthUserByEmail(string) (*models.AuthUser, error) {
	return nil, repository.WrapError(repository.ErrNotConfigured, "baas.GetAuthUserByEmail", errIdentityManaged)
}

func (r *Repository) UpdateAuthUserPassword(string, string) error {
	return repository.WrapError(repository.ErrNotConfigured, "baas.UpdateAuthUserPassword", errIdentityManaged)
}

func (r *Repository) TouchLastSignIn(string) error {
	return repository.WrapError(repository.ErrNotConfigured, "baas.TouchLastSignIn", errIdentityManaged)
}

func (r *Repository) UpsertAdminUser(*models.AdminUser, string) (*models.AdminUser, error) {
	return nil, repository.WrapError(repository.ErrNotConfigured, "baas.UpsertAdminUser", errIdentityManaged)
}

func (r *Repository) GetAdminByEmail(string) (*models.AdminUser, *models.AuthUser, error) {
	return nil, nil, repository.WrapError(repository.ErrNotConfigured, "baas.GetAdminByEmail", errIdentityManaged)
}
