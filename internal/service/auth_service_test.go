package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cybervibe/helpdesk/internal/auth"
	"github.com/cybervibe/helpdesk/internal/config"
	"github.com/cybervibe/helpdesk/internal/domain"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) add(user *domain.User) {
	f.byID[user.ID] = user
	f.byEmail[user.Email] = user
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	user, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	user, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	delete(f.byEmail, user.Email)
	return nil
}

type fakeProfileRepo struct {
	byUserID   map[string]*domain.Profile
	byUsername map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: map[string]*domain.Profile{}, byUsername: map[string]*domain.Profile{}}
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	f.byUserID[profile.UserID] = profile
	f.byUsername[profile.Username] = profile
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	profile, ok := f.byUserID[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return profile, nil
}

func (f *fakeProfileRepo) GetByUsername(_ context.Context, username string) (*domain.Profile, error) {
	profile, ok := f.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return profile, nil
}

func (f *fakeProfileRepo) ListAll(_ context.Context) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(f.byUserID))
	for _, p := range f.byUserID {
		out = append(out, *p)
	}
	return out, nil
}

type fakeRoleRepo struct {
	roles  map[string]domain.Role
	getErr error
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: map[string]domain.Role{}}
}

func (f *fakeRoleRepo) GetByUserID(_ context.Context, userID string) (domain.Role, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	role, ok := f.roles[userID]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return role, nil
}

func (f *fakeRoleRepo) Set(_ context.Context, userID string, role domain.Role) error {
	f.roles[userID] = role
	return nil
}

func (f *fakeRoleRepo) ListAll(_ context.Context) (map[string]domain.Role, error) {
	out := make(map[string]domain.Role, len(f.roles))
	for id, role := range f.roles {
		out[id] = role
	}
	return out, nil
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 15,
			BcryptCost:            4,
		},
	}
}

type authFixture struct {
	users    *fakeUserRepo
	profiles *fakeProfileRepo
	roles    *fakeRoleRepo
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:    newFakeUserRepo(),
		profiles: newFakeProfileRepo(),
		roles:    newFakeRoleRepo(),
	}
	f.svc = NewAuthService(testConfig(), AuthDependencies{
		UserRepo:    f.users,
		ProfileRepo: f.profiles,
		RoleRepo:    f.roles,
		Logger:      zap.NewNop(),
	})
	return f
}

func (f *authFixture) seedAccount(t *testing.T, id, email, username, password string, role domain.Role) {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	f.users.add(&domain.User{ID: id, Email: email, PasswordHash: hash})
	require.NoError(t, f.profiles.Create(context.Background(), &domain.Profile{UserID: id, Username: username, FullName: "Test User"}))
	if role != "" {
		f.roles.roles[id] = role
	}
}

func TestLoginByUsernameAndEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "u1", "ravi@example.com", "ravi", "s3cret", domain.RoleAdmin)

	for _, login := range []string{"ravi", "ravi@example.com"} {
		session, token, exp, err := f.svc.Login(context.Background(), login, "s3cret")
		require.NoError(t, err, "login %q", login)
		assert.Equal(t, "u1", session.UserID)
		assert.Equal(t, "ravi", session.Username)
		assert.Equal(t, domain.RoleAdmin, session.Role)
		assert.NotEmpty(t, token)
		assert.False(t, exp.IsZero())
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "u1", "ravi@example.com", "ravi", "s3cret", domain.RoleTechnician)

	tests := []struct {
		name     string
		login    string
		password string
	}{
		{name: "wrong password", login: "ravi", password: "wrong"},
		{name: "unknown username", login: "nobody", password: "s3cret"},
		{name: "unknown email", login: "nobody@example.com", password: "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := f.svc.Login(context.Background(), tt.login, tt.password)
			require.Error(t, err)
			assert.EqualError(t, err, "invalid credentials")
		})
	}
}

func TestResolveRoleDefaultsToTechnician(t *testing.T) {
	f := newAuthFixture(t)
	assert.Equal(t, domain.RoleTechnician, f.svc.ResolveRole(context.Background(), "no-role-row"))
}

func TestResolveRoleReturnsStoredRole(t *testing.T) {
	f := newAuthFixture(t)
	f.roles.roles["u1"] = domain.RoleAdmin
	f.roles.roles["u2"] = domain.RoleTechnician

	assert.Equal(t, domain.RoleAdmin, f.svc.ResolveRole(context.Background(), "u1"))
	assert.Equal(t, domain.RoleTechnician, f.svc.ResolveRole(context.Background(), "u2"))
}

func TestResolveRoleStoreFailureIsUnknown(t *testing.T) {
	f := newAuthFixture(t)
	f.roles.getErr = errors.New("connection refused")
	assert.Equal(t, domain.RoleUnknown, f.svc.ResolveRole(context.Background(), "u1"))
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "u1", "ravi@example.com", "ravi", "old-pass", domain.RoleTechnician)

	require.Error(t, f.svc.ChangePassword(context.Background(), "u1", "wrong", "new-pass"))
	require.NoError(t, f.svc.ChangePassword(context.Background(), "u1", "old-pass", "new-pass"))

	_, _, _, err := f.svc.Login(context.Background(), "ravi", "old-pass")
	assert.Error(t, err)
	_, _, _, err = f.svc.Login(context.Background(), "ravi", "new-pass")
	assert.NoError(t, err)
}
