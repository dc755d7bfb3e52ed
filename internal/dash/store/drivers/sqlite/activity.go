package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

type activityRepo struct {
	q dbtx
}

func (r *activityRepo) CreateActivity(ctx context.Context, a domain.ActivityLog) error {
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO activity_logs (id, user_id, username, action, module, target, status, ip_address, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.Username, string(a.Action), string(a.Module), a.Target,
		string(a.Status), a.IPAddress, a.Details, toMillis(created),
	)
	return mapConstraint(err)
}

func (r *activityRepo) ListActivity(ctx context.Context, f domain.ActivityFilter) ([]domain.ActivityLog, error) {
	var (
		where []string
		args  []any
	)
	if f.Action != "" {
		where = append(where, "action = ?")
		args = append(args, string(f.Action))
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Module != "" {
		where = append(where, "module = ?")
		args = append(args, string(f.Module))
	}
	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		where = append(where, `(LOWER(username) LIKE ? ESCAPE '\' OR LOWER(target) LIKE ? ESCAPE '\' OR LOWER(details) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if !f.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, toMillis(f.Since))
	}
	if !f.Until.IsZero() {
		where = append(where, "created_at < ?")
		args = append(args, toMillis(f.Until))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT id, user_id, username, action, module, target, status, ip_address, details, created_at FROM activity_logs`)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	rows, err := r.q.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []domain.ActivityLog
	for rows.Next() {
		var (
			a                      domain.ActivityLog
			action, module, status string
			created                int64
		)
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Username, &action, &module, &a.Target,
			&status, &a.IPAddress, &a.Details, &created,
		); err != nil {
			return nil, err
		}
		a.Action = domain.ActivityAction(action)
		a.Module = domain.Module(module)
		a.Status = domain.ActivityStatus(status)
		a.CreatedAt = fromMillis(created)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *activityRepo) DeleteActivityBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM activity_logs WHERE created_at < ?`, toMillis(t))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
