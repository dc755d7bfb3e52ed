package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
	"github.com/aussiebroadwan/dash/internal/dash/service"
	"github.com/aussiebroadwan/dash/internal/dash/store"
	"github.com/aussiebroadwan/dash/pkg/slogx"
)

var ErrIDConflict = errors.New("seed: role id already used by another role")

// Seeder writes fixtures. Roles and users that already exist by name are
// left alone, so seeding twice is harmless. Activity is always appended.
type Seeder struct {
	Store    store.Store
	Users    *service.UserService
	Activity *service.ActivityService

	now func() time.Time
}

// Result counts what Apply created.
type Result struct {
	Roles    int
	Users    int
	Activity int
	Skipped  int
}

func (r Result) String() string {
	return fmt.Sprintf("%d roles, %d users, %d activity entries (%d skipped)",
		r.Roles, r.Users, r.Activity, r.Skipped)
}

func (s *Seeder) Apply(ctx context.Context, fx Fixture) (Result, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()
	if s.now != nil {
		now = s.now()
	}

	var res Result
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, rf := range fx.Roles {
			created, err := seedRole(ctx, tx.Roles(), rf)
			if err != nil {
				return fmt.Errorf("role %q: %w", rf.Name, err)
			}
			if created {
				res.Roles++
			} else {
				res.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	for _, uf := range fx.Users {
		role, err := s.Store.Roles().GetRoleByName(ctx, uf.Role)
		if err != nil {
			return res, fmt.Errorf("user %q: role %q: %w", uf.Username, uf.Role, err)
		}
		_, err = s.Users.CreateUser(ctx, service.NewUser{
			Username:    uf.Username,
			DisplayName: uf.DisplayName,
			Email:       uf.Email,
			Password:    uf.Password,
			RoleID:      role.ID,
			Status:      domain.UserStatus(uf.Status),
		})
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("user %q: %w", uf.Username, err)
		default:
			res.Users++
		}
	}

	for _, af := range fx.Activity {
		e, err := af.entry(now)
		if err != nil {
			return res, err
		}
		if u, err := s.Store.Users().GetUserByUsername(ctx, af.Username); err == nil {
			e.UserID = u.ID
		}
		if err := s.Activity.Record(ctx, e); err != nil {
			return res, fmt.Errorf("activity: %w", err)
		}
		res.Activity++
	}

	l.Info("seeded fixture",
		slog.Int("roles", res.Roles),
		slog.Int("users", res.Users),
		slog.Int("activity", res.Activity),
		slog.Int("skipped", res.Skipped),
	)
	return res, nil
}

// seedRole reports false when a role with the same name already exists.
func seedRole(ctx context.Context, roles store.Roles, rf RoleFixture) (bool, error) {
	_, err := roles.GetRoleByName(ctx, rf.Name)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, store.ErrNotFound):
		return false, err
	}

	if rf.ID != 0 {
		existing, err := roles.GetRoleByID(ctx, rf.ID)
		switch {
		case err == nil:
			return false, fmt.Errorf("%w: id %d is %q", ErrIDConflict, rf.ID, existing.Name)
		case !errors.Is(err, store.ErrNotFound):
			return false, err
		}
	}

	_, err = roles.CreateRole(ctx, domain.Role{
		ID:          rf.ID,
		Name:        rf.Name,
		Description: rf.Description,
		IsSystem:    rf.System,
		ParentID:    rf.ParentID,
		Permissions: domain.Permissions(rf.Permissions).Normalize(),
	})
	return err == nil, err
}
