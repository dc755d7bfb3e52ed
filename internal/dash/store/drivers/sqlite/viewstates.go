package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

type viewStatesRepo struct {
	q dbtx
}

func (r *viewStatesRepo) GetViewState(ctx context.Context, sessionID string) (domain.ViewState, error) {
	var (
		v        domain.ViewState
		expanded string
		updated  int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT session_id, fingerprint, expanded, zoom, updated_at
		FROM view_states WHERE session_id = ?`, sessionID,
	).Scan(&v.SessionID, &v.Fingerprint, &expanded, &v.ZoomPercent, &updated)
	if err != nil {
		return domain.ViewState{}, mapNotFound(err)
	}

	if err := json.Unmarshal([]byte(expanded), &v.Expanded); err != nil {
		return domain.ViewState{}, fmt.Errorf("view state %s expanded: %w", sessionID, err)
	}
	v.UpdatedAt = fromMillis(updated)
	return v, nil
}

func (r *viewStatesRepo) UpsertViewState(ctx context.Context, v domain.ViewState) error {
	expanded := v.Expanded
	if expanded == nil {
		expanded = []int64{}
	}
	b, err := json.Marshal(expanded)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO view_states (session_id, fingerprint, expanded, zoom, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			fingerprint = excluded.fingerprint,
			expanded = excluded.expanded,
			zoom = excluded.zoom,
			updated_at = excluded.updated_at`,
		v.SessionID, v.Fingerprint, string(b), v.ZoomPercent, nowMillis(),
	)
	return err
}

func (r *viewStatesRepo) DeleteViewStatesBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM view_states WHERE updated_at < ?`, toMillis(t))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
