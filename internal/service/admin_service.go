package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/cybervibe/helpdesk/internal/auth"
	"github.com/cybervibe/helpdesk/internal/config"
	"github.com/cybervibe/helpdesk/internal/domain"
	"github.com/cybervibe/helpdesk/internal/repository"
	apperrors "github.com/cybervibe/helpdesk/pkg/util"
)

// AdminService provisions and lists helpdesk accounts. All of it is gated on
// the admin role at the transport layer.
type AdminService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	roles      repository.RoleRepository
	authSvc    *AuthService
	bcryptCost int
	logger     *zap.Logger
}

// AdminDependencies bundles requirements for the admin service.
type AdminDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
	RoleRepo    repository.RoleRepository
	AuthService *AuthService
	Logger      *zap.Logger
}

// CreateUserInput describes account provisioning payload.
type CreateUserInput struct {
	Email    string
	Password string
	Username string
	FullName string
	Role     domain.Role
}

// AccountSummary joins profile and role for listing.
type AccountSummary struct {
	UserID   string
	Username string
	FullName string
	Role     domain.Role
}

// NewAdminService constructs the service.
func NewAdminService(cfg config.Config, deps AdminDependencies) *AdminService {
	return &AdminService{
		users:      deps.UserRepo,
		profiles:   deps.ProfileRepo,
		roles:      deps.RoleRepo,
		authSvc:    deps.AuthService,
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     deps.Logger,
	}
}

// CreateUser provisions an account with profile and role. The role defaults
// to technician when unset.
func (s *AdminService) CreateUser(ctx context.Context, input CreateUserInput) (*AccountSummary, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Username = strings.TrimSpace(input.Username)
	if input.Email == "" || input.Password == "" || input.Username == "" {
		return nil, apperrors.NewValidationError("email, password, username required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleTechnician
	}
	if role != domain.RoleAdmin && role != domain.RoleTechnician {
		return nil, apperrors.NewValidationError("role must be admin or technician", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.profiles.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("username already taken", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Email: input.Email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	profile := &domain.Profile{UserID: user.ID, Username: input.Username, FullName: input.FullName}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	if err := s.roles.Set(ctx, user.ID, role); err != nil {
		return nil, err
	}

	s.logger.Info("account created", zap.String("username", input.Username), zap.String("role", string(role)))
	return &AccountSummary{
		UserID:   user.ID,
		Username: profile.Username,
		FullName: profile.FullName,
		Role:     role,
	}, nil
}

// DeleteUser removes the account. Profile and role rows go with it via
// cascade, and tickets created by the account are removed by the same
// cascade.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return err
	}
	if s.authSvc != nil {
		s.authSvc.InvalidateRole(ctx, userID)
	}
	return nil
}

// ListUsers returns every account's profile joined with its role. Accounts
// without a role row show as technician, consistent with role resolution.
func (s *AdminService) ListUsers(ctx context.Context) ([]AccountSummary, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := s.roles.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]AccountSummary, 0, len(profiles))
	for _, profile := range profiles {
		role, ok := roles[profile.UserID]
		if !ok {
			role = domain.RoleTechnician
		}
		result = append(result, AccountSummary{
			UserID:   profile.UserID,
			Username: profile.Username,
			FullName: profile.FullName,
			Role:     role,
		})
	}
	return result, nil
}

// SeedAdmin provisions the bootstrap admin account when configured and not
// already present. Failures are logged, not fatal: an operator can always
// seed by hand.
func (s *AdminService) SeedAdmin(ctx context.Context, cfg config.BootstrapConfig) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	if _, err := s.profiles.GetByUsername(ctx, cfg.AdminUsername); err == nil {
		return
	}
	_, err := s.CreateUser(ctx, CreateUserInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Username: cfg.AdminUsername,
		FullName: cfg.AdminFullName,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		s.logger.Warn("bootstrap admin seeding failed", zap.Error(err))
		return
	}
	s.logger.Info("bootstrap admin created", zap.String("username", cfg.AdminUsername))
}
