package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campuscalm/brain/internal/concierge"
)

// Get implements concierge.PendingStore; nil means no live flow.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) (*concierge.PendingAction, error) {
	var pa concierge.PendingAction
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, kind, step, title, event_type, updated_at
		FROM pending_actions
		WHERE user_id = $1`,
		userID,
	).Scan(&pa.UserID, &pa.Kind, &pa.Step, &pa.Title, &pa.EventType, &pa.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query pending action: %w", err)
	}
	return &pa, nil
}

// Put upserts the user's single pending action.
func (s *Store) Put(ctx context.Context, pa *concierge.PendingAction) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pending_actions (user_id, kind, step, title, event_type, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			kind = EXCLUDED.kind,
			step = EXCLUDED.step,
			title = EXCLUDED.title,
			event_type = EXCLUDED.event_type,
			updated_at = EXCLUDED.updated_at`,
		pa.UserID, pa.Kind, pa.Step, pa.Title, pa.EventType, pa.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert pending action: %w", err)
	}
	return nil
}

// Delete removes the user's pending action, if any.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM pending_actions WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("delete pending action: %w", err)
	}
	return nil
}
