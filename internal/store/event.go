package store

import (
	"database/sql"
	"time"
)

// Event is one logged interaction occurrence within a session.
type Event struct {
	ID        int64
	SessionID string
	Tick      uint64
	Type      string
	HandSlot  int
	EntityID  string
	Cell      int
	Detail    string
	CreatedAt time.Time
}

// EventRepository provides append and query operations for events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append inserts an event at the end of a session's log.
func (r *EventRepository) Append(e *Event) error {
	e.CreatedAt = time.Now()

	result, err := r.db.Exec(
		`INSERT INTO events (session_id, tick, type, hand_slot, entity_id, cell, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID, e.Tick, e.Type, e.HandSlot, e.EntityID, e.Cell, e.Detail, e.CreatedAt,
	)
	if err != nil {
		return err
	}

	e.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves a session's events in insertion order.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, tick, type, hand_slot, entity_id, cell, detail, created_at
		 FROM events WHERE session_id = ? ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		err := rows.Scan(&e.ID, &e.SessionID, &e.Tick, &e.Type, &e.HandSlot,
			&e.EntityID, &e.Cell, &e.Detail, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// CountBySession returns the number of events logged for a session.
func (r *EventRepository) CountBySession(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE session_id = ?`, sessionID,
	).Scan(&count)
	return count, err
}
