package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campuscalm/brain/internal/engine"
)

// Append implements engine.History. The category is stored as a foreign key
// resolved from the slug; deleting a category later nulls it without touching
// the log row.
func (s *Store) Append(ctx context.Context, in engine.Interaction) error {
	var categoryID *uuid.UUID
	if in.CategorySlug != "" {
		var id uuid.UUID
		err := s.pool.QueryRow(ctx,
			`SELECT id FROM emotional_categories WHERE slug = $1`, in.CategorySlug,
		).Scan(&id)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// Forced categories may not exist as rows; log without the link.
		case err != nil:
			return fmt.Errorf("resolve category %s: %w", in.CategorySlug, err)
		default:
			categoryID = &id
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO interactions (id, user_id, message, category_id, reply, origin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		in.ID, in.UserID, in.Message, categoryID, in.Reply, in.Origin, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// Recent implements engine.History: the newest interactions after since,
// newest first, capped at limit.
func (s *Store) Recent(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]engine.Interaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT i.id, i.user_id, i.message, COALESCE(c.slug, ''), i.reply, i.origin, i.created_at
		FROM interactions i
		LEFT JOIN emotional_categories c ON c.id = i.category_id
		WHERE i.user_id = $1 AND i.created_at > $2
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT $3`,
		userID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []engine.Interaction
	for rows.Next() {
		var in engine.Interaction
		if err := rows.Scan(&in.ID, &in.UserID, &in.Message, &in.CategorySlug, &in.Reply, &in.Origin, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// UncategorizedInteractions pages through interactions that never resolved a
// category, keyed on (created_at, id) so retries after a partial run resume
// where they stopped.
func (s *Store) UncategorizedInteractions(ctx context.Context, after time.Time, afterID uuid.UUID, limit int) ([]engine.Interaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, message, ''::text, reply, origin, created_at
		FROM interactions
		WHERE category_id IS NULL AND (created_at, id) > ($1, $2)
		ORDER BY created_at, id
		LIMIT $3`,
		after, afterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query uncategorized: %w", err)
	}
	defer rows.Close()

	var out []engine.Interaction
	for rows.Next() {
		var in engine.Interaction
		if err := rows.Scan(&in.ID, &in.UserID, &in.Message, &in.CategorySlug, &in.Reply, &in.Origin, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// SetInteractionCategory links an interaction to a category by slug.
func (s *Store) SetInteractionCategory(ctx context.Context, id uuid.UUID, slug string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE interactions
		SET category_id = (SELECT id FROM emotional_categories WHERE slug = $2)
		WHERE id = $1`,
		id, slug,
	)
	if err != nil {
		return fmt.Errorf("set interaction category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interaction %s not found", id)
	}
	return nil
}

// LastReply returns the reply most recently shown to the user, any age.
func (s *Store) LastReply(ctx context.Context, userID uuid.UUID) (string, error) {
	var reply string
	err := s.pool.QueryRow(ctx, `
		SELECT reply FROM interactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		userID,
	).Scan(&reply)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query last reply: %w", err)
	}
	return reply, nil
}
