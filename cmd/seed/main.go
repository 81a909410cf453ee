// Command seed is the one-time setup routine: it provisions the default admin
// account (rotating its credentials if it already exists) and, optionally, a
// demo account with a starter balance. Credentials come from the environment
// and are consumed only here, never by the core contract.
package main

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Eustersshikoli/investhub-backend/internal/backend"
	"github.com/Eustersshikoli/investhub-backend/internal/config"
	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/services/auth"
)

const demoStarterBalance = 1000

func main() {
	config.LoadEnv()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatal("DEFAULT_ADMIN_EMAIL and DEFAULT_ADMIN_PASSWORD must be set")
	}

	backends := backend.NewSelector(cfg, log)
	defer backends.Close()

	if backends.ActiveKind() == "" {
		log.Fatal("no storage backend is usable; check backend configuration")
	}

	if err := backends.Migrate(); err != nil {
		log.WithError(err).Fatal("schema migration failed")
	}

	svc := auth.NewService(backends, log)

	admin, err := svc.CreateAdminUser("admin", cfg.AdminEmail, cfg.AdminPassword, models.AdminRoleSuperAdmin)
	if err != nil {
		log.WithError(err).Fatal("failed to provision admin account")
	}
	log.WithField("email", logger.RedactEmail(admin.Email)).Info("admin account ready")

	if cfg.DemoEmail != "" && cfg.DemoPassword != "" {
		seedDemoUser(svc, backends, cfg, log)
	}
}

// seedDemoUser provisions the demo account best-effort: a failure here is
// reported but does not fail the setup run.
func seedDemoUser(svc *auth.Service, backends *backend.Selector, cfg *config.Config, log *logrus.Logger) {
	result, err := svc.SignUp(auth.SignUpInput{
		Email:    cfg.DemoEmail,
		Password: cfg.DemoPassword,
		FullName: "Demo Account",
		Username: "demo",
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			log.Info("demo account already exists")
			return
		}
		log.WithError(err).Warn("failed to provision demo account")
		return
	}

	if _, err := backends.Active().CreateBalance(result.UserID, demoStarterBalance, "USD"); err != nil {
		log.WithError(err).Warn("failed to seed demo balance")
		return
	}
	log.WithField("email", logger.RedactEmail(result.Email)).Info("demo account ready")
}
