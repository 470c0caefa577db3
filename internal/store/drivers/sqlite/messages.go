package sqlite

import (
	"context"
	"database/sql"

	"github.com/shan145/event-management-client/internal/domain"
)

type messagesRepo struct {
	db dbtx
}

func (r *messagesRepo) UpsertMessages(ctx context.Context, msgs []domain.Message) error {
	for _, m := range msgs {
		// Optimistic placeholders never hit the cache; only
		// server-acknowledged rows are durable.
		if m.TempID != "" {
			continue
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO messages (id, event_id, sender_id, sender_name, content, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				sender_name = excluded.sender_name,
				content = excluded.content`,
			m.ID, m.EventID, m.SenderID, m.Sender, m.Content, m.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *messagesRepo) ListByEvent(ctx context.Context, eventID string) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, event_id, sender_id, sender_name, content, created_at
		FROM messages WHERE event_id = ?
		ORDER BY created_at, id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.EventID, &m.SenderID, &m.Sender, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *messagesRepo) LastID(ctx context.Context, eventID string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		SELECT id FROM messages WHERE event_id = ?
		ORDER BY created_at DESC, id DESC LIMIT 1`, eventID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (r *messagesRepo) SetLastSeen(ctx context.Context, eventID, messageID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_cursors (event_id, last_seen_id) VALUES (?, ?)
		ON CONFLICT (event_id) DO UPDATE SET last_seen_id = excluded.last_seen_id`,
		eventID, messageID)
	return err
}

func (r *messagesRepo) GetLastSeen(ctx context.Context, eventID string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT last_seen_id FROM chat_cursors WHERE event_id = ?`, eventID).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (r *messagesRepo) CountAfter(ctx context.Context, eventID, messageID string) (int, error) {
	var count int
	var err error
	if messageID == "" {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM messages WHERE event_id = ?`, eventID).Scan(&count)
	} else {
		// Cursor comparison rides on (created_at, id) matching the list
		// ordering.
		err = r.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM messages
			WHERE event_id = ?
			  AND (created_at, id) > (SELECT created_at, id FROM messages WHERE id = ?)`,
			eventID, messageID).Scan(&count)
	}
	return count, err
}

func (r *messagesRepo) DeleteByEvent(ctx context.Context, eventID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE event_id = ?`, eventID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM chat_cursors WHERE event_id = ?`, eventID)
	return err
}
