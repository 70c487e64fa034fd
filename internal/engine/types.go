// Package engine orchestrates one chat turn of the triage widget: intent
// resolution, concierge flows, emotional classification, contextual memory
// and reply assembly. Every processed turn appends exactly one Interaction.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/content"
)

// Category slugs the engine treats specially.
const (
	slugStress        = "estresse"
	slugEvolution     = "evolucao"
	slugSocial        = "social"
	slugDoubt         = "duvida"
	slugDemotivation  = "desmotivacao"
	slugMentalFatigue = "cansaco_mental"
)

// Interaction is one append-only log row, the engine's memory substrate.
// CategorySlug is empty when no category was resolved for the turn.
type Interaction struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Message      string
	CategorySlug string
	Reply        string
	Origin       string
	CreatedAt    time.Time
}

// History persists and reads back the interaction log.
type History interface {
	Append(ctx context.Context, in Interaction) error
	// Recent returns interactions newer than since, newest first, capped at limit.
	Recent(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]Interaction, error)
	// LastReply returns the reply text most recently shown to the user,
	// regardless of age. Empty when the user has no history.
	LastReply(ctx context.Context, userID uuid.UUID) (string, error)
}

// Session is the per-user key-value state the micro-intervention picker reads
// and writes (last shown intervention name).
type Session interface {
	LastInterventionName(ctx context.Context, userID uuid.UUID) (string, error)
	SetLastInterventionName(ctx context.Context, userID uuid.UUID, name string) error
}

// Settings are the engine tunables, injected at construction so tests can
// shrink windows and thresholds.
type Settings struct {
	MemoryWindow         time.Duration
	HistoryLimit         int
	StressRepeatCount    int
	EvolutionRepeatCount int
	TransitionWindow     time.Duration
}

// DefaultSettings mirrors production values.
func DefaultSettings() Settings {
	return Settings{
		MemoryWindow:         48 * time.Hour,
		HistoryLimit:         10,
		StressRepeatCount:    3,
		EvolutionRepeatCount: 2,
		TransitionWindow:     24 * time.Hour,
	}
}

// InterventionPayload is one micro-intervention in a chat response.
type InterventionPayload struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Result is the outcome of one handled turn. CategorySlug and Emoji are empty
// when no category resolved; Interventions holds zero or one items.
type Result struct {
	Reply         string
	CategorySlug  string
	Emoji         string
	Locale        string
	Interventions []InterventionPayload
	CreatedTask   *TaskRef
	CreatedEvent  *TaskRef
	CreatedNote   *NoteRef
}

// TaskRef identifies an entity a concierge turn created, for event fan-out.
// EventType is empty for tasks; When is the due date or event start.
type TaskRef struct {
	ID        uuid.UUID
	Title     string
	EventType string
	When      time.Time
}

// NoteRef identifies the in-app notification written with a creation.
type NoteRef struct {
	ID    uuid.UUID
	Title string
	Link  string
}

// categoryBySlug is a lookup helper over the active category list.
func categoryBySlug(categories []content.Category, slug string) *content.Category {
	for i := range categories {
		if categories[i].Slug == slug {
			return &categories[i]
		}
	}
	return nil
}
