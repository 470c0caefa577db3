package sqlite

import (
	"context"
	"database/sql"
)

type prefsRepo struct {
	db dbtx
}

// GetTabIndex returns the last-active tab for a dashboard ("admin" or
// "user"), defaulting to 0 when never set.
func (r *prefsRepo) GetTabIndex(ctx context.Context, dashboard string) (int, error) {
	var index int
	err := r.db.QueryRowContext(ctx,
		`SELECT tab_index FROM ui_prefs WHERE dashboard = ?`, dashboard).Scan(&index)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return index, nil
}

func (r *prefsRepo) SetTabIndex(ctx context.Context, dashboard string, index int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ui_prefs (dashboard, tab_index) VALUES (?, ?)
		ON CONFLICT (dashboard) DO UPDATE SET tab_index = excluded.tab_index`,
		dashboard, index)
	return err
}
