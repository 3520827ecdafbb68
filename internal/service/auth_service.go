package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cybervibe/helpdesk/internal/auth"
	"github.com/cybervibe/helpdesk/internal/config"
	"github.com/cybervibe/helpdesk/internal/domain"
	"github.com/cybervibe/helpdesk/internal/persistence"
	"github.com/cybervibe/helpdesk/internal/repository"
)

const roleCacheKeyPrefix = "helpdesk:role:"

// SessionContext is the resolved caller identity: account, display profile
// and role, populated once at authentication time.
type SessionContext struct {
	UserID   string
	Email    string
	Username string
	FullName string
	Role     domain.Role
}

// AuthService coordinates login and role resolution.
type AuthService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	roles      repository.RoleRepository
	cache      *persistence.Redis
	tokenMgr   *auth.TokenManager
	bcryptCost int
	roleTTL    time.Duration
	logger     *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
	RoleRepo    repository.RoleRepository
	Cache       *persistence.Redis
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		roles:      deps.RoleRepo,
		cache:      deps.Cache,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		roleTTL:    cfg.Auth.RoleCacheTTL(),
		logger:     deps.Logger,
	}
}

// Login authenticates by username or email and resolves the session context.
func (s *AuthService) Login(ctx context.Context, login, password string) (*SessionContext, string, time.Time, error) {
	user, err := s.lookupAccount(ctx, login)
	if err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, errors.New("invalid credentials")
	}

	session := &SessionContext{
		UserID: user.ID,
		Email:  user.Email,
		Role:   s.ResolveRole(ctx, user.ID),
	}
	if profile, err := s.profiles.GetByUserID(ctx, user.ID); err == nil {
		session.Username = profile.Username
		session.FullName = profile.FullName
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return session, token, exp, nil
}

// ResolveRole derives the caller's role from the role table, via a short
// lived Redis cache. A missing row resolves to technician (least privilege);
// a store failure resolves to the unknown role, which no gate accepts.
func (s *AuthService) ResolveRole(ctx context.Context, userID string) domain.Role {
	if role, ok := s.cachedRole(ctx, userID); ok {
		return role
	}

	role, err := s.roles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			role = domain.RoleTechnician
		} else {
			s.logger.Warn("role lookup failed", zap.String("user_id", userID), zap.Error(err))
			return domain.RoleUnknown
		}
	}

	s.cacheRole(ctx, userID, role)
	return role
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return errors.New("new password required")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return errors.New("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// InvalidateRole drops the cached role after a role change.
func (s *AuthService) InvalidateRole(ctx context.Context, userID string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	_ = s.cache.Client.Del(ctx, roleCacheKeyPrefix+userID).Err()
}

func (s *AuthService) lookupAccount(ctx context.Context, login string) (*domain.User, error) {
	if strings.Contains(login, "@") {
		return s.users.GetByEmail(ctx, login)
	}
	profile, err := s.profiles.GetByUsername(ctx, login)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, profile.UserID)
}

func (s *AuthService) cachedRole(ctx context.Context, userID string) (domain.Role, bool) {
	if s.cache == nil || s.cache.Client == nil || s.roleTTL <= 0 {
		return "", false
	}
	val, err := s.cache.Client.Get(ctx, roleCacheKeyPrefix+userID).Result()
	if err != nil {
		return "", false
	}
	switch role := domain.Role(val); role {
	case domain.RoleAdmin, domain.RoleTechnician:
		return role, true
	}
	return "", false
}

func (s *AuthService) cacheRole(ctx context.Context, userID string, role domain.Role) {
	if s.cache == nil || s.cache.Client == nil || s.roleTTL <= 0 {
		return
	}
	if err := s.cache.Client.Set(ctx, roleCacheKeyPrefix+userID, string(role), s.roleTTL).Err(); err != nil {
		s.logger.Debug("role cache write failed", zap.Error(err))
	}
}
