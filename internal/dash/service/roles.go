package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/hierarchy"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

var (
	ErrInvalidRole     = errors.New("invalid_role")
	ErrParentNotFound  = errors.New("parent_not_found")
	ErrRoleCycle       = errors.New("role_cycle")
	ErrSystemRole      = errors.New("system_role")
	ErrRoleHasChildren = errors.New("role_has_children")
	ErrRoleInUse       = errors.New("role_in_use")
	ErrRoleNameTaken   = errors.New("role_name_taken")
)

const maxRoleNameLength = 64

type RolesService struct {
	Store store.Store
}

// RoleInput creates a role.
type RoleInput struct {
	Name        string
	Description string
	ParentID    *int64
	Permissions domain.Permissions
}

// RoleUpdate changes the fields that are set. Parent is only touched when
// SetParent is true so that a nil ParentID can mean "make it a root".
type RoleUpdate struct {
	Name        *string
	Description *string
	SetParent   bool
	ParentID    *int64
	Permissions domain.Permissions
}

// GetRoleByID fetches a role by its ID.
func (s *RolesService) GetRoleByID(ctx context.Context, roleID int64) (domain.Role, error) {
	return s.Store.Roles().GetRoleByID(ctx, roleID)
}

// ListAll returns all roles in the system.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListAll(ctx)
}

// Hierarchy builds the role forest from the current role list.
func (s *RolesService) Hierarchy(ctx context.Context) (*hierarchy.Forest, error) {
	roles, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(roles), nil
}

func (s *RolesService) Create(ctx context.Context, actor Actor, in RoleInput) (domain.Role, error) {
	l := slogx.FromContext(ctx)

	name, err := validRoleName(in.Name)
	if err != nil {
		return domain.Role{}, err
	}

	var id int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if in.ParentID != nil {
			if _, err := tx.Roles().GetRoleByID(ctx, *in.ParentID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrParentNotFound
				}
				return err
			}
		}

		id, err = tx.Roles().CreateRole(ctx, domain.Role{
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			ParentID:    in.ParentID,
			Permissions: in.Permissions.Normalize(),
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrRoleNameTaken
			}
			return err
		}

		return record(ctx, tx.Activity(), entry(actor, domain.ActionCreate, domain.ModuleRoles, name))
	})
	if err != nil {
		return domain.Role{}, err
	}

	l.Info("role created", slog.Int64("role_id", id), slog.String("name", name))
	return s.GetRoleByID(ctx, id)
}

func (s *RolesService) Update(ctx context.Context, actor Actor, roleID int64, u RoleUpdate) (domain.Role, error) {
	l := slogx.FromContext(ctx)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		role, err := tx.Roles().GetRoleByID(ctx, roleID)
		if err != nil {
			return err
		}

		var changes []string
		if u.Name != nil {
			name, err := validRoleName(*u.Name)
			if err != nil {
				return err
			}
			if name != role.Name {
				if role.IsSystem {
					return fmt.Errorf("%w: system roles cannot be renamed", ErrSystemRole)
				}
				role.Name = name
				changes = append(changes, "name")
			}
		}
		if u.Description != nil {
			role.Description = strings.TrimSpace(*u.Description)
			changes = append(changes, "description")
		}
		if u.SetParent {
			if u.ParentID != nil {
				if _, err := tx.Roles().GetRoleByID(ctx, *u.ParentID); err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return ErrParentNotFound
					}
					return err
				}
				roles, err := tx.Roles().ListAll(ctx)
				if err != nil {
					return err
				}
				if hierarchy.WouldCycle(roles, roleID, u.ParentID) {
					return ErrRoleCycle
				}
			}
			role.ParentID = u.ParentID
			changes = append(changes, "parent")
		}
		if u.Permissions != nil {
			role.Permissions = u.Permissions.Normalize()
			changes = append(changes, "permissions")
		}

		if err := tx.Roles().UpdateRole(ctx, role); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrRoleNameTaken
			}
			return err
		}

		e := entry(actor, domain.ActionUpdate, domain.ModuleRoles, role.Name)
		e.Details = "changed " + strings.Join(changes, ", ")
		return record(ctx, tx.Activity(), e)
	})
	if err != nil {
		return domain.Role{}, err
	}

	l.Info("role updated", slog.Int64("role_id", roleID))
	return s.GetRoleByID(ctx, roleID)
}

// Delete removes a custom role that has no children and no users.
func (s *RolesService) Delete(ctx context.Context, actor Actor, roleID int64) error {
	l := slogx.FromContext(ctx)

	var name string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		role, err := tx.Roles().GetRoleByID(ctx, roleID)
		if err != nil {
			return err
		}
		name = role.Name

		if role.IsSystem {
			return ErrSystemRole
		}
		if role.UserCount > 0 {
			return ErrRoleInUse
		}
		children, err := tx.Roles().CountChildren(ctx, roleID)
		if err != nil {
			return err
		}
		if children > 0 {
			return ErrRoleHasChildren
		}

		if err := tx.Roles().DeleteRole(ctx, roleID); err != nil {
			return err
		}
		return record(ctx, tx.Activity(), entry(actor, domain.ActionDelete, domain.ModuleRoles, role.Name))
	})

	switch {
	case err == nil:
		l.Info("role deleted", slog.Int64("role_id", roleID), slog.String("name", name))
		return nil
	case errors.Is(err, ErrSystemRole), errors.Is(err, ErrRoleInUse), errors.Is(err, ErrRoleHasChildren):
		e := entry(actor, domain.ActionDelete, domain.ModuleRoles, name)
		e.Status = domain.StatusFailed
		e.Details = err.Error()
		if rerr := record(ctx, s.Store.Activity(), e); rerr != nil {
			l.Error("failed to record refused delete", slog.Any("error", rerr))
		}
		return err
	default:
		return err
	}
}

func validRoleName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidRole)
	}
	if len(name) > maxRoleNameLength {
		return "", fmt.Errorf("%w: name longer than %d characters", ErrInvalidRole, maxRoleNameLength)
	}
	return name, nil
}
