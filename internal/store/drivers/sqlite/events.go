package sqlite

import (
	"context"
	"database/sql"

	"github.com/shan145/event-management-client/internal/domain"
)

type eventsRepo struct {
	db dbtx
}

func (r *eventsRepo) UpsertEvent(ctx context.Context, e domain.Event) error {
	going, err := encodeList(e.GoingList)
	if err != nil {
		return err
	}
	waitlist, err := encodeList(e.Waitlist)
	if err != nil {
		return err
	}
	noGo, err := encodeList(e.NoGoList)
	if err != nil {
		return err
	}

	var maxAttendees sql.NullInt64
	if e.MaxAttendees != nil {
		maxAttendees = sql.NullInt64{Int64: int64(*e.MaxAttendees), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO events (id, group_id, title, description, event_date, event_time,
			location, location_url, max_attendees, guests, going_list, waitlist, no_go_list, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			group_id = excluded.group_id,
			title = excluded.title,
			description = excluded.description,
			event_date = excluded.event_date,
			event_time = excluded.event_time,
			location = excluded.location,
			location_url = excluded.location_url,
			max_attendees = excluded.max_attendees,
			guests = excluded.guests,
			going_list = excluded.going_list,
			waitlist = excluded.waitlist,
			no_go_list = excluded.no_go_list,
			updated_at = CURRENT_TIMESTAMP`,
		e.ID, e.GroupID, e.Title, e.Description, e.Date, e.Time,
		e.Location, e.LocationURL, maxAttendees, e.Guests, going, waitlist, noGo,
	)
	return err
}

func (r *eventsRepo) GetEventByID(ctx context.Context, id string) (domain.Event, error) {
	row := r.db.QueryRowContext(ctx, selectEvent+` WHERE id = ?`, id)

	e, err := scanEvent(row)
	if err != nil {
		return domain.Event{}, mapNotFound(err)
	}
	return e, nil
}

func (r *eventsRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, selectEvent+` ORDER BY event_date, event_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventsRepo) ListEventsByGroup(ctx context.Context, groupID string) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		selectEvent+` WHERE group_id = ? ORDER BY event_date, event_time`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventsRepo) ReplaceEvents(ctx context.Context, events []domain.Event) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return err
	}
	for _, e := range events {
		if err := r.UpsertEvent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

func (r *eventsRepo) DeleteEvent(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

const selectEvent = `
	SELECT id, group_id, title, description, event_date, event_time,
		location, location_url, max_attendees, guests, going_list, waitlist, no_go_list
	FROM events`

func scanEvent(row rowScanner) (domain.Event, error) {
	var e domain.Event
	var maxAttendees sql.NullInt64
	var going, waitlist, noGo string

	err := row.Scan(&e.ID, &e.GroupID, &e.Title, &e.Description, &e.Date, &e.Time,
		&e.Location, &e.LocationURL, &maxAttendees, &e.Guests, &going, &waitlist, &noGo)
	if err != nil {
		return domain.Event{}, err
	}

	if maxAttendees.Valid {
		capacity := int(maxAttendees.Int64)
		e.MaxAttendees = &capacity
	}
	if e.GoingList, err = decodeList(going); err != nil {
		return domain.Event{}, err
	}
	if e.Waitlist, err = decodeList(waitlist); err != nil {
		return domain.Event{}, err
	}
	if e.NoGoList, err = decodeList(noGo); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

func collectEvents(rows *sql.Rows) ([]domain.Event, error) {
	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
