package sqlite

import (
	"context"

	"github.com/shan145/event-management-client/internal/store"
)

type sessionsRepo struct {
	db dbtx
}

// The table holds at most one row; signing in replaces any prior session.

func (r *sessionsRepo) SaveToken(ctx context.Context, sealedToken string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session_tokens (id, sealed_token, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			sealed_token = excluded.sealed_token,
			updated_at = CURRENT_TIMESTAMP`,
		sealedToken)
	return err
}

func (r *sessionsRepo) GetToken(ctx context.Context) (string, error) {
	var sealed string
	err := r.db.QueryRowContext(ctx,
		`SELECT sealed_token FROM session_tokens WHERE id = 1`).Scan(&sealed)
	if err != nil {
		return "", mapNotFound(err)
	}
	return sealed, nil
}

func (r *sessionsRepo) ClearToken(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_tokens`)
	return err
}

var _ store.Sessions = (*sessionsRepo)(nil)
