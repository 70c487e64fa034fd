package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/classify"
	"github.com/campuscalm/brain/internal/content"
)

// pickIntervention selects at most one active micro-intervention for the
// turn, skipping the name the user saw last and remembering the new one.
// Social and evolution turns, and turns with no category, get none.
func (e *Engine) pickIntervention(ctx context.Context, userID uuid.UUID, categorySlug string, locale classify.Locale) ([]InterventionPayload, error) {
	if categorySlug == "" || categorySlug == slugSocial || categorySlug == slugEvolution {
		return nil, nil
	}

	items, err := e.content.ActiveInterventions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interventions: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	lastName, err := e.session.LastInterventionName(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}

	candidates := items
	if lastName != "" && len(items) > 1 {
		filtered := make([]content.MicroIntervention, 0, len(items))
		for _, it := range items {
			if it.Name != lastName {
				filtered = append(filtered, it)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	chosen := candidates[e.pick(len(candidates))]
	if err := e.session.SetLastInterventionName(ctx, userID, chosen.Name); err != nil {
		return nil, fmt.Errorf("save session state: %w", err)
	}

	payload := InterventionPayload{Name: chosen.Name, Text: chosen.Text}
	if locale == classify.LocaleEN {
		if translated, ok := interventionTranslations[chosen.Name]; ok {
			payload = translated
		}
	}
	return []InterventionPayload{payload}, nil
}
