package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LastInterventionName implements engine.Session.
func (s *Store) LastInterventionName(ctx context.Context, userID uuid.UUID) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx,
		`SELECT last_intervention_name FROM chat_sessions WHERE user_id = $1`, userID,
	).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query session: %w", err)
	}
	return name, nil
}

// SetLastInterventionName implements engine.Session.
func (s *Store) SetLastInterventionName(ctx context.Context, userID uuid.UUID, name string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_sessions (user_id, last_intervention_name, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET
			last_intervention_name = EXCLUDED.last_intervention_name,
			updated_at = now()`,
		userID, name,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}
