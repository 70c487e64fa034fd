package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/concierge"
)

// CreateTask implements concierge.Planner.
func (s *Store) CreateTask(ctx context.Context, t concierge.Task) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tasks (id, user_id, title, description, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		t.ID, t.UserID, t.Title, t.Description, t.DueDate, t.Status,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// CreateEvent implements concierge.Planner.
func (s *Store) CreateEvent(ctx context.Context, e concierge.Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO calendar_events (id, user_id, title, event_type, start_at, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		e.ID, e.UserID, e.Title, e.EventType, e.StartAt, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecentTaskExists backs duplicate-submission suppression.
func (s *Store) RecentTaskExists(ctx context.Context, userID uuid.UUID, title string, since time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE user_id = $1 AND title = $2 AND created_at > $3
		)`,
		userID, title, since,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recent task: %w", err)
	}
	return exists, nil
}

// RecentEventExists matches on title and start timestamp.
func (s *Store) RecentEventExists(ctx context.Context, userID uuid.UUID, title string, startAt time.Time, since time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM calendar_events
			WHERE user_id = $1 AND title = $2 AND start_at = $3 AND created_at > $4
		)`,
		userID, title, startAt, since,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recent event: %w", err)
	}
	return exists, nil
}

// CreateNotification implements concierge.Notifier.
func (s *Store) CreateNotification(ctx context.Context, n concierge.Notification) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO inapp_notifications (id, user_id, title, body, link, unread, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())`,
		n.ID, n.UserID, n.Title, n.Body, n.Link, n.Unread,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// RecentNotificationExists backs duplicate-submission suppression.
func (s *Store) RecentNotificationExists(ctx context.Context, userID uuid.UUID, title string, since time.Time) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM inapp_notifications
			WHERE user_id = $1 AND title = $2 AND created_at > $3
		)`,
		userID, title, since,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check recent notification: %w", err)
	}
	return exists, nil
}
