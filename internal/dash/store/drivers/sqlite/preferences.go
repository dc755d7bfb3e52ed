package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aussiebroadwan/dash/internal/dash/domain"
)

type preferencesRepo struct {
	q dbtx
}

func (r *preferencesRepo) GetPreferences(ctx context.Context, userID string) (domain.Preferences, error) {
	var (
		p         domain.Preferences
		theme     string
		favorites string
		updated   int64
	)
	err := r.q.QueryRowContext(ctx, `
		SELECT user_id, theme, brand_color, favorites, updated_at
		FROM preferences WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &theme, &p.BrandColor, &favorites, &updated)
	if err != nil {
		return domain.Preferences{}, mapNotFound(err)
	}

	if err := json.Unmarshal([]byte(favorites), &p.Favorites); err != nil {
		return domain.Preferences{}, fmt.Errorf("preferences %s favorites: %w", userID, err)
	}
	p.Theme = domain.Theme(theme)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}

func (r *preferencesRepo) UpsertPreferences(ctx context.Context, p domain.Preferences) error {
	favorites := p.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	b, err := json.Marshal(favorites)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT INTO preferences (user_id, theme, brand_color, favorites, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = excluded.theme,
			brand_color = excluded.brand_color,
			favorites = excluded.favorites,
			updated_at = excluded.updated_at`,
		p.UserID, string(p.Theme), p.BrandColor, string(b), nowMillis(),
	)
	return err
}
