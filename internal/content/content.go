// Package content holds the operator-managed reference data the engine reads:
// emotional categories, their triggers and responses, and the standalone
// micro-interventions. The engine never writes this data.
package content

import (
	"context"

	"github.com/google/uuid"
)

// Category is an emotional/intent label (estresse, evolucao, social...).
type Category struct {
	ID     uuid.UUID
	Name   string
	Slug   string
	Emoji  string
	Active bool
}

// Trigger votes for its category when any of its keywords match. Keywords is
// the raw operator-entered field: comma/semicolon/newline delimited words and
// phrases. A category may have several triggers; their keywords are pooled.
type Trigger struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Keywords   string
	Active     bool
}

// Response is one reply variant for a category.
type Response struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Text       string
	Active     bool
}

// MicroIntervention is a short named exercise, not tied to any category.
type MicroIntervention struct {
	ID     uuid.UUID
	Name   string
	Text   string
	Active bool
}

// Repository is the read path the classifier and reply selection depend on.
// Implementations: the pgx store and the in-memory pack used in tests.
type Repository interface {
	ActiveCategories(ctx context.Context) ([]Category, error)
	ActiveTriggers(ctx context.Context) ([]Trigger, error)
	ActiveResponses(ctx context.Context, categoryID uuid.UUID) ([]string, error)
	ActiveInterventions(ctx context.Context) ([]MicroIntervention, error)
}
