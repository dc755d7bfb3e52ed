package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

// AdminRoleName is the system role given to the bootstrap administrator.
const AdminRoleName = "Super Admin"

var ErrBootstrapIncomplete = errors.New("bootstrap requires an admin username and password")

type BootstrapService struct {
	Store store.Store
	Users *UserService
}

// BootstrapData names the first administrator.
type BootstrapData struct {
	AdminUsername    string
	AdminDisplayName string
	AdminPassword    string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the admin role and user on an empty database. It
// reports false without error when users already exist.
func (s *BootstrapService) Bootstrap(ctx context.Context, req BootstrapData) (bool, error) {
	l := slogx.FromContext(ctx)

	if done, err := s.IsBootstrapped(ctx); err != nil || done {
		return false, err
	}
	if req.AdminUsername == "" || req.AdminPassword == "" {
		return false, ErrBootstrapIncomplete
	}

	role, err := s.Store.Roles().GetRoleByName(ctx, AdminRoleName)
	switch {
	case errors.Is(err, store.ErrNotFound):
		id, err := s.Store.Roles().CreateRole(ctx, domain.Role{
			Name:        AdminRoleName,
			Description: "Full access to the dashboard",
			IsSystem:    true,
			Permissions: domain.AdminPermissions(),
		})
		if err != nil {
			return false, err
		}
		role.ID = id
	case err != nil:
		return false, err
	}

	u, err := s.Users.CreateUser(ctx, NewUser{
		Username:    req.AdminUsername,
		DisplayName: req.AdminDisplayName,
		Password:    req.AdminPassword,
		RoleID:      role.ID,
	})
	if err != nil {
		l.Error("failed to create admin user", slog.Any("error", err))
		return false, err
	}

	l.Info("successfully bootstrapped dashboard",
		slog.String("admin_user_id", u.ID),
		slog.Int64("admin_role_id", role.ID),
	)
	return true, nil
}
