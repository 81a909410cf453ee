package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eustersshikoli/investhub-backend/internal/config"
	"github.com/Eustersshikoli/investhub-backend/internal/logger"
	"github.com/Eustersshikoli/investhub-backend/internal/models"
	"github.com/Eustersshikoli/investhub-backend/internal/repository"
	"github.com/Eustersshikoli/investhub-backend/internal/repository/baas"
)

// fakeBackends satisfies Backends with a fixed repository and mode.
type fakeBackends struct {
	repo repository.Repository
	kind string
	auth *baas.AuthClient
	cfg  *config.Config
}

func (f *fakeBackends) Active() repository.Repository { return f.repo }
func (f *fakeBackends) ActiveKind() string            { return f.kind }
func (f *fakeBackends) AuthClient() *baas.AuthClient  { return f.auth }
func (f *fakeBackends) Config() *config.Config        { return f.cfg }

// fakeRepo is an in-memory repository with injectable failures.
type fakeRepo struct {
	authUsers map[string]*models.AuthUser    // by email
	profiles  map[string]*models.UserProfile // by id
	balances  map[string]float64             // by user|currency
	admins    map[string]*models.AdminUser   // by email

	createAuthErr    error
	createProfileErr error
	createBalanceErr error
	usernameErr      error
	emailErr         error

	createProfileCalls int
	createBalanceCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		authUsers: make(map[string]*models.AuthUser),
		profiles:  make(map[string]*models.UserProfile),
		balances:  make(map[string]float64),
		admins:    make(map[string]*models.AdminUser),
	}
}

func balKey(userID, currency string) string { return userID + "|" + currency }

func (f *fakeRepo) CreateProfile(p *models.UserProfile) (*models.UserProfile, error) {
	f.createProfileCalls++
	if f.createProfileErr != nil {
		return nil, f.createProfileErr
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetProfile(id string) (*models.UserProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeRepo) GetProfileByUsername(username string) (*models.UserProfile, error) {
	if f.usernameErr != nil {
		return nil, f.usernameErr
	}
	for _, p := range f.profiles {
		if p.Username != nil && strings.EqualFold(*p.Username, username) {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetProfileByEmail(email string) (*models.UserProfile, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	for _, p := range f.profiles {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpdateProfile(id string, update models.ProfileUpdate) (*models.UserProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, repository.WrapError(repository.ErrNotFound, "fake.UpdateProfile", nil)
	}
	fields := update.Fields()
	if v, ok := fields["telegram_id"]; ok {
		tid := v.(int64)
		p.TelegramID = &tid
	}
	if v, ok := fields["telegram_username"]; ok {
		s := v.(string)
		p.TelegramUsername = &s
	}
	if v, ok := fields["telegram_first_name"]; ok {
		s := v.(string)
		p.TelegramFirstName = &s
	}
	if v, ok := fields["full_name"]; ok {
		s := v.(string)
		p.FullName = &s
	}
	if v, ok := fields["username"]; ok {
		s := v.(string)
		p.Username = &s
	}
	return p, nil
}

func (f *fakeRepo) CreateBalance(userID string, amount float64, currency string) (*models.UserBalance, error) {
	f.createBalanceCalls++
	if f.createBalanceErr != nil {
		return nil, f.createBalanceErr
	}
	f.balances[balKey(userID, currency)] += amount
	return &models.UserBalance{UserID: userID, Currency: currency, Balance: f.balances[balKey(userID, currency)]}, nil
}

func (f *fakeRepo) GetBalance(userID, currency string) (*models.UserBalance, error) {
	b, ok := f.balances[balKey(userID, currency)]
	if !ok {
		return nil, nil
	}
	return &models.UserBalance{UserID: userID, Currency: currency, Balance: b}, nil
}

func (f *fakeRepo) AdjustBalance(userID string, delta float64, currency string) (*models.UserBalance, error) {
	if _, ok := f.balances[balKey(userID, currency)]; !ok {
		return nil, repository.WrapError(repository.ErrNotFound, "fake.AdjustBalance", nil)
	}
	f.balances[balKey(userID, currency)] += delta
	return f.GetBalance(userID, currency)
}

func (f *fakeRepo) CreateTransaction(tx *models.Transaction) (*models.Transaction, error) {
	return tx, nil
}

func (f *fakeRepo) ListTransactions(string, int) ([]models.Transaction, error) { return nil, nil }

func (f *fakeRepo) UpdateTransactionStatus(uint, string) error { return nil }

func (f *fakeRepo) CreateInvestment(inv *models.Investment) (*models.Investment, error) {
	return inv, nil
}

func (f *fakeRepo) ListInvestments(string) ([]models.InvestmentWithPlan, error) { return nil, nil }

func (f *fakeRepo) GetPlan(uint) (*models.InvestmentPlan, error) { return nil, nil }

func (f *fakeRepo) ListPlans() ([]models.InvestmentPlan, error) { return nil, nil }

func (f *fakeRepo) CreateAuthUser(u *models.AuthUser) (*models.AuthUser, error) {
	if f.createAuthErr != nil {
		return nil, f.createAuthErr
	}
	if _, exists := f.authUsers[u.Email]; exists {
		return nil, repository.WrapError(repository.ErrConstraintViolation, "fake.CreateAuthUser",
			fmt.Errorf("duplicate email"))
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	f.authUsers[u.Email] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetAuthUserByEmail(email string) (*models.AuthUser, error) {
	return f.authUsers[email], nil
}

func (f *fakeRepo) UpdateAuthUserPassword(id, passwordHash string) error {
	for _, u := range f.authUsers {
		if u.ID == id {
			u.PasswordHash = passwordHash
			return nil
		}
	}
	return repository.WrapError(repository.ErrNotFound, "fake.UpdateAuthUserPassword", nil)
}

func (f *fakeRepo) TouchLastSignIn(string) error { return nil }

func (f *fakeRepo) UpsertAdminUser(admin *models.AdminUser, passwordHash string) (*models.AdminUser, error) {
	auth, ok := f.authUsers[admin.Email]
	if !ok {
		auth = &models.AuthUser{ID: uuid.NewString(), Email: admin.Email}
		f.authUsers[admin.Email] = auth
	}
	auth.PasswordHash = passwordHash
	admin.AuthUserID = auth.ID
	admin.Active = true
	cp := *admin
	f.admins[admin.Email] = &cp
	return &cp, nil
}

func (f *fakeRepo) GetAdminByEmail(email string) (*models.AdminUser, *models.AuthUser, error) {
	admin, ok := f.admins[email]
	if !ok {
		return nil, nil, nil
	}
	return admin, f.authUsers[email], nil
}

func newTestService(t *testing.T, repo repository.Repository) *Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	backends := &fakeBackends{
		repo: repo,
		kind: config.BackendPostgres,
		cfg:  &config.Config{BcryptCost: bcrypt.MinCost},
	}
	return NewService(backends, logger.New("error"))
}

func TestSignUp(t *testing.T) {
	t.Run("creates identity, profile and zero balance", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)

		result, err := svc.SignUp(SignUpInput{
			Email:    "user@example.com",
			Password: "hunter2hunter2",
			FullName: "Test User",
			Username: "testuser",
		})
		require.NoError(t, err)
		require.NotEmpty(t, result.UserID)
		require.NotNil(t, result.Profile)
		assert.Equal(t, "user@example.com", result.Profile.Email)
		assert.Equal(t, result.UserID, result.Profile.ID)

		balance, err := repo.GetBalance(result.UserID, "USD")
		require.NoError(t, err)
		require.NotNil(t, balance)
		assert.Equal(t, float64(0), balance.Balance)
	})

	t.Run("duplicate email surfaces as ErrEmailTaken with no orphan rows", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)

		_, err := svc.SignUp(SignUpInput{Email: "dup@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)

		before := repo.createProfileCalls
		_, err = svc.SignUp(SignUpInput{Email: "dup@example.com", Password: "otherpassword"})
		require.ErrorIs(t, err, ErrEmailTaken)
		assert.Equal(t, before, repo.createProfileCalls, "no profile attempt after identity failure")
		assert.Len(t, repo.profiles, 1)
		assert.Len(t, repo.balances, 1)
	})

	t.Run("profile failure does not abort sign-up", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createProfileErr = repository.WrapError(repository.ErrConnection, "fake", errors.New("down"))
		svc := newTestService(t, repo)

		result, err := svc.SignUp(SignUpInput{Email: "flaky@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.UserID)
		assert.Nil(t, result.Profile)
		assert.Equal(t, 1, repo.createBalanceCalls, "balance still attempted")
	})

	t.Run("balance failure does not abort sign-up", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createBalanceErr = repository.WrapError(repository.ErrConnection, "fake", errors.New("down"))
		svc := newTestService(t, repo)

		result, err := svc.SignUp(SignUpInput{Email: "flaky2@example.com", Password: "hunter2hunter2"})
		require.NoError(t, err)
		assert.NotNil(t, result.Profile)
	})

	t.Run("short password rejected before identity creation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)

		_, err := svc.SignUp(SignUpInput{Email: "short@example.com", Password: "short"})
		require.ErrorIs(t, err, ErrWeakPassword)
		assert.Empty(t, repo.authUsers)
	})

	t.Run("malformed email rejected before identity creation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)

		_, err := svc.SignUp(SignUpInput{Email: "not-an-email", Password: "hunter2hunter2"})
		require.ErrorIs(t, err, ErrInvalidEmail)
		assert.Empty(t, repo.authUsers)
	})

	t.Run("malformed username rejected before identity creation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)

		_, err := svc.SignUp(SignUpInput{
			Email:    "user@example.com",
			Password: "hunter2hunter2",
			Username: "has spaces",
		})
		require.ErrorIs(t, err, ErrInvalidUsername)
		assert.Empty(t, repo.authUsers)
	})
}

func TestSignIn(t *testing.T) {
	signUp := func(t *testing.T, svc *Service, email, password string) string {
		t.Helper()
		result, err := svc.SignUp(SignUpInput{Email: email, Password: password})
		require.NoError(t, err)
		return result.UserID
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)
		userID := signUp(t, svc, "user@example.com", "hunter2hunter2")

		session, err := svc.SignIn("user@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, userID, session.UserID)
		assert.NotEmpty(t, session.AccessToken)
		assert.NotEmpty(t, session.RefreshToken)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		repo := newFakeRepo()
		svc := newTestService(t, repo)
		signUp(t, svc, "user@example.com", "hunter2hunter2")

		_, errWrong := svc.SignIn("user@example.com", "not-the-password")
		_, errUnknown := svc.SignIn("ghost@example.com", "hunter2hunter2")

		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error(),
			"error must not reveal which half of the pair failed")
	})
}

func TestAdminRotation(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	_, err := svc.CreateAdminUser("ops", "admin@example.com", "first-password", models.AdminRoleAdmin)
	require.NoError(t, err)

	_, err = svc.VerifyAdminCredentials("admin@example.com", "first-password")
	require.NoError(t, err)

	// Re-issuing rotates the hash and role rather than failing.
	rotated, err := svc.CreateAdminUser("ops", "admin@example.com", "second-password", models.AdminRoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.AdminRoleSuperAdmin, rotated.Role)

	_, err = svc.VerifyAdminCredentials("admin@example.com", "second-password")
	require.NoError(t, err)

	_, err = svc.VerifyAdminCredentials("admin@example.com", "first-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateAdminUserRejectsUnknownRole(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.CreateAdminUser("ops", "admin@example.com", "first-password", "owner")
	require.ErrorIs(t, err, ErrInvalidRole)
}
