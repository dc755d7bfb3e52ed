package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

type rolesRepo struct {
	q dbtx
}

const roleColumns = `
	r.id, r.name, r.description, r.is_system, r.parent_id, r.permissions,
	r.created_at, r.updated_at,
	(SELECT COUNT(*) FROM users u WHERE u.role_id = r.id) AS user_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (domain.Role, error) {
	var (
		r           domain.Role
		parent      sql.NullInt64
		permissions string
		created     int64
		updated     int64
	)
	if err := row.Scan(
		&r.ID, &r.Name, &r.Description, &r.IsSystem, &parent, &permissions,
		&created, &updated, &r.UserCount,
	); err != nil {
		return domain.Role{}, err
	}

	if err := json.Unmarshal([]byte(permissions), &r.Permissions); err != nil {
		return domain.Role{}, fmt.Errorf("role %d permissions: %w", r.ID, err)
	}
	r.ParentID = mapNullInt64Ptr(parent)
	r.CreatedAt = fromMillis(created)
	r.UpdatedAt = fromMillis(updated)
	return r, nil
}

func encodePermissions(p domain.Permissions) (string, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *rolesRepo) GetRoleByID(ctx context.Context, id int64) (domain.Role, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.id = ?`, id)
	role, err := scanRole(row)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+roleColumns+` FROM roles r WHERE r.name = ?`, name)
	role, err := scanRole(row)
	if err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+roleColumns+` FROM roles r ORDER BY r.id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) (int64, error) {
	perms, err := encodePermissions(role.Permissions)
	if err != nil {
		return 0, err
	}

	now := nowMillis()
	var id sql.NullInt64
	if role.ID != 0 {
		id = sql.NullInt64{Int64: role.ID, Valid: true}
	}

	res, err := r.q.ExecContext(ctx, `
		INSERT INTO roles (id, name, description, is_system, parent_id, permissions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, role.Name, role.Description, role.IsSystem, mapOptionalInt64(role.ParentID), perms, now, now,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *rolesRepo) UpdateRole(ctx context.Context, role domain.Role) error {
	perms, err := encodePermissions(role.Permissions)
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE roles
		SET name = ?, description = ?, parent_id = ?, permissions = ?, updated_at = ?
		WHERE id = ?`,
		role.Name, role.Description, mapOptionalInt64(role.ParentID), perms, nowMillis(), role.ID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireAffected(res, nil)
}

func (r *rolesRepo) DeleteRole(ctx context.Context, id int64) error {
	return requireAffected(r.q.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id))
}

func (r *rolesRepo) CountChildren(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles WHERE parent_id = ?`, id).Scan(&n)
	return n, err
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}
