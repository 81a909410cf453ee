// Package backend wires configuration to concrete storage backends. The
// selector validates each backend's settings independently at startup and
// produces a Live or Disabled handle per backend; construction itself never
// fails, so a deployment with a single configured backend starts cleanly.
package backend

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/config"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
	"github.com/Eustersshikoli/investhub-backend/internal/repository/baas"
	"github.com/Eustersshikoli/investhub-backend/internal/repository/cache"
	"github.com/Eustersshikoli/investhub-backend/internal/repository/postgres"
)

const profileCacheTTL = 15 * time.Minute

// ErrNoBackendSelected is the disabled-handle reason when neither backend
// could be activated.
var ErrNoBackendSelected = errors.New("no storage backend selected")

// Handle is one backend's entry point: Live with a working repository, or
// Disabled with the configuration error retained. A Disabled handle performs
// no I/O; every operation on its repository fails with ErrNotConfigured.
type Handle struct {
	kind string
	repo repository.Repository
	err  error
}

// Live reports whether the backend passed validation and connected.
func (h *Handle) Live() bool { return h.err == nil }

// Err returns the reason the handle is Disabled, or nil.
func (h *Handle) Err() error { return h.err }

// Repository returns the backend's repository. On a Disabled handle this is a
// stub that fails every call immediately.
func (h *Handle) Repository() repository.Repository { return h.repo }

// Selector owns one handle per backend and routes callers to whichever one is
// currently selected. Selection is intended to be a startup-time decision;
// the mutex only guards against a stray toggle racing a reader.
type Selector struct {
	mu  sync.RWMutex
	log *logrus.Logger

	postgres *Handle
	baas     *Handle

	active string

	pgRepo     *postgres.Repository
	authClient *baas.AuthClient
	cfg        *config.Config
}

// NewSelector validates both backends and attempts the configured initial
// selection. It never fails: an unusable backend yields a Disabled handle and
// a log line, not an error.
func NewSelector(cfg *config.Config, log *logrus.Logger) *Selector {
	s := &Selector{log: log, cfg: cfg}

	var cacheSvc *cache.Service
	if cfg.RedisAddr != "" {
		cacheSvc = cache.NewService(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, profileCacheTTL)
	}

	s.postgres = s.buildPostgres(cfg, cacheSvc)
	s.baas = s.buildBaaS(cfg, cacheSvc)

	if err := s.Use(cfg.DataBackend); err != nil {
		log.WithError(err).Warn("initial backend selection failed; repository stays disabled until a live backend is selected")
	}
	return s
}

func (s *Selector) buildPostgres(cfg *config.Config, cacheSvc *cache.Service) *Handle {
	if err := cfg.ValidatePostgres(); err != nil {
		s.log.WithError(err).Info("postgres backend disabled")
		return &Handle{kind: config.BackendPostgres, repo: repository.Disabled(err), err: err}
	}

	repo, err := postgres.Open(cfg.DatabaseURL, s.log)
	if err != nil {
		s.log.WithError(err).Warn("postgres backend disabled: connection failed")
		return &Handle{kind: config.BackendPostgres, repo: repository.Disabled(err), err: err}
	}
	s.pgRepo = repo

	var r repository.Repository = repo
	if cacheSvc != nil {
		r = repository.WithProfileCache(r, cacheSvc, s.log)
	}
	return &Handle{kind: config.BackendPostgres, repo: r}
}

func (s *Selector) buildBaaS(cfg *config.Config, cacheSvc *cache.Service) *Handle {
	if err := cfg.ValidateBaaS(); err != nil {
		s.log.WithError(err).Info("managed backend disabled")
		return &Handle{kind: config.BackendBaaS, repo: repository.Disabled(err), err: err}
	}

	client := baas.NewClient(cfg.BaaSURL, cfg.BaaSAnonKey, s.log)
	s.authClient = baas.NewAuthClient(client, s.log)

	var r repository.Repository = baas.New(client, s.log)
	if cacheSvc != nil {
		r = repository.WithProfileCache(r, cacheSvc, s.log)
	}
	return &Handle{kind: config.BackendBaaS, repo: r}
}

// Use switches the active backend. Selecting a Disabled backend fails and
// leaves the prior selection untouched; there is no partial toggle.
func (s *Selector) Use(kind string) error {
	h := s.handle(kind)
	if h == nil {
		return fmt.Errorf("unknown backend %q", kind)
	}
	if !h.Live() {
		return fmt.Errorf("cannot select backend %q: %w", kind,
			repository.WrapError(repository.ErrNotConfigured, "backend.Use", h.err))
	}

	s.mu.Lock()
	s.active = kind
	s.mu.Unlock()

	s.log.WithField("backend", kind).Info("storage backend selected")
	return nil
}

// Active returns the repository of the selected backend, or a disabled stub
// when nothing usable has been selected.
func (s *Selector) Active() repository.Repository {
	s.mu.RLock()
	kind := s.active
	s.mu.RUnlock()

	if h := s.handle(kind); h != nil {
		return h.repo
	}
	return repository.Disabled(ErrNoBackendSelected)
}

// ActiveKind returns the selected backend's name, or "" when none is active.
func (s *Selector) ActiveKind() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Postgres returns the SQL backend's handle.
func (s *Selector) Postgres() *Handle { return s.postgres }

// BaaS returns the managed backend's handle.
func (s *Selector) BaaS() *Handle { return s.baas }

// AuthClient returns the managed identity client, or nil when the managed
// backend is disabled.
func (s *Selector) AuthClient() *baas.AuthClient { return s.authClient }

// Config exposes the configuration the selector was built from.
func (s *Selector) Config() *config.Config { return s.cfg }

// Migrate runs schema migration on the SQL backend when it is live. The
// managed backend's schema is provisioned on the platform itself.
func (s *Selector) Migrate() error {
	if s.pgRepo == nil {
		return nil
	}
	return s.pgRepo.Migrate()
}

// Close releases backend resources.
func (s *Selector) Close() error {
	if s.pgRepo == nil {
		return nil
	}
	return s.pgRepo.Close()
}

func (s *Selector) handle(kind string) *Handle {
	switch kind {
	case config.BackendPostgres:
		return s.postgres
	case config.BackendBaaS:
		return s.baas
	}
	return nil
}
