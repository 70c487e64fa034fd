package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/content"
)

// ActiveCategories implements content.Repository.
func (s *Store) ActiveCategories(ctx context.Context) ([]content.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, slug, emoji, active
		FROM emotional_categories
		WHERE active
		ORDER BY slug`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []content.Category
	for rows.Next() {
		var c content.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Emoji, &c.Active); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ActiveTriggers returns active triggers of active categories.
func (s *Store) ActiveTriggers(ctx context.Context) ([]content.Trigger, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT t.id, t.category_id, t.keywords, t.active
		FROM emotional_triggers t
		JOIN emotional_categories c ON c.id = t.category_id
		WHERE t.active AND c.active
		ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("query triggers: %w", err)
	}
	defer rows.Close()

	var out []content.Trigger
	for rows.Next() {
		var t content.Trigger
		if err := rows.Scan(&t.ID, &t.CategoryID, &t.Keywords, &t.Active); err != nil {
			return nil, fmt.Errorf("scan trigger: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ActiveResponses returns the active response texts of one category.
func (s *Store) ActiveResponses(ctx context.Context, categoryID uuid.UUID) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT text FROM emotional_responses
		WHERE category_id = $1 AND active
		ORDER BY id`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// ActiveInterventions returns all active micro-interventions.
func (s *Store) ActiveInterventions(ctx context.Context) ([]content.MicroIntervention, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, text, active FROM micro_interventions
		WHERE active
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query interventions: %w", err)
	}
	defer rows.Close()

	var out []content.MicroIntervention
	for rows.Next() {
		var m content.MicroIntervention
		if err := rows.Scan(&m.ID, &m.Name, &m.Text, &m.Active); err != nil {
			return nil, fmt.Errorf("scan intervention: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SeedContent loads a content pack into empty reference tables. Existing rows
// win: seeding is skipped when any category already exists, so operator edits
// survive restarts.
func (s *Store) SeedContent(ctx context.Context, pack *content.Pack) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM emotional_categories`).Scan(&count); err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, sc := range pack.Categories {
		catID := uuid.New()
		if _, err := tx.Exec(ctx, `
			INSERT INTO emotional_categories (id, name, slug, emoji, active)
			VALUES ($1, $2, $3, $4, TRUE)`,
			catID, sc.Name, sc.Slug, sc.Emoji,
		); err != nil {
			return fmt.Errorf("insert category %s: %w", sc.Slug, err)
		}
		for _, raw := range sc.Triggers {
			if _, err := tx.Exec(ctx, `
				INSERT INTO emotional_triggers (id, category_id, keywords, active)
				VALUES ($1, $2, $3, TRUE)`,
				uuid.New(), catID, raw,
			); err != nil {
				return fmt.Errorf("insert trigger for %s: %w", sc.Slug, err)
			}
		}
		for _, text := range sc.Responses {
			if _, err := tx.Exec(ctx, `
				INSERT INTO emotional_responses (id, category_id, text, active)
				VALUES ($1, $2, $3, TRUE)`,
				uuid.New(), catID, text,
			); err != nil {
				return fmt.Errorf("insert response for %s: %w", sc.Slug, err)
			}
		}
	}
	for _, si := range pack.MicroInterventions {
		if _, err := tx.Exec(ctx, `
			INSERT INTO micro_interventions (id, name, text, active)
			VALUES ($1, $2, $3, TRUE)`,
			uuid.New(), si.Name, si.Text,
		); err != nil {
			return fmt.Errorf("insert intervention %s: %w", si.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
