package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shan145/event-management-client/internal/domain"
)

type groupsRepo struct {
	db dbtx
}

func (r *groupsRepo) UpsertGroup(ctx context.Context, g domain.Group) error {
	tags, err := encodeList(g.Tags)
	if err != nil {
		return err
	}
	admins, err := encodeList(g.GroupAdmins)
	if err != nil {
		return err
	}
	members, err := encodeList(g.Members)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO groups (id, name, tags, main_admin_id, group_admins, members, invite_token, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			tags = excluded.tags,
			main_admin_id = excluded.main_admin_id,
			group_admins = excluded.group_admins,
			members = excluded.members,
			invite_token = excluded.invite_token,
			updated_at = CURRENT_TIMESTAMP`,
		g.ID, g.Name, tags, g.MainAdminID, admins, members, g.InviteToken,
	)
	return err
}

func (r *groupsRepo) GetGroupByID(ctx context.Context, id string) (domain.Group, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, tags, main_admin_id, group_admins, members, invite_token
		FROM groups WHERE id = ?`, id)

	g, err := scanGroup(row)
	if err != nil {
		return domain.Group{}, mapNotFound(err)
	}
	return g, nil
}

func (r *groupsRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, tags, main_admin_id, group_admins, members, invite_token
		FROM groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *groupsRepo) ReplaceGroups(ctx context.Context, groups []domain.Group) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM groups`); err != nil {
		return err
	}
	for _, g := range groups {
		if err := r.UpsertGroup(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (r *groupsRepo) DeleteGroup(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (domain.Group, error) {
	var g domain.Group
	var tags, admins, members string

	if err := row.Scan(&g.ID, &g.Name, &tags, &g.MainAdminID, &admins, &members, &g.InviteToken); err != nil {
		return domain.Group{}, err
	}

	var err error
	if g.Tags, err = decodeList(tags); err != nil {
		return domain.Group{}, err
	}
	if g.GroupAdmins, err = decodeList(admins); err != nil {
		return domain.Group{}, err
	}
	if g.Members, err = decodeList(members); err != nil {
		return domain.Group{}, err
	}
	return g, nil
}

// Id lists are stored as JSON arrays in text columns; the cache never
// queries inside them.
func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to encode id list: %w", err)
	}
	return string(raw), nil
}

func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode id list: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}
