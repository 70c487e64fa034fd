package content

import (
	"context"

	"github.com/google/uuid"
)

// MemoryRepository serves a content pack from memory. Tests build the
// classifier against it; it also backs a datastore-free dev mode.
type MemoryRepository struct {
	categories    []Category
	triggers      []Trigger
	responses     map[uuid.UUID][]string
	interventions []MicroIntervention
}

// NewMemoryRepository flattens a pack into an immutable repository.
func NewMemoryRepository(p *Pack) *MemoryRepository {
	r := &MemoryRepository{responses: make(map[uuid.UUID][]string)}
	for _, sc := range p.Categories {
		cat := Category{
			ID:     uuid.New(),
			Name:   sc.Name,
			Slug:   sc.Slug,
			Emoji:  sc.Emoji,
			Active: true,
		}
		r.categories = append(r.categories, cat)
		for _, raw := range sc.Triggers {
			r.triggers = append(r.triggers, Trigger{
				ID:         uuid.New(),
				CategoryID: cat.ID,
				Keywords:   raw,
				Active:     true,
			})
		}
		r.responses[cat.ID] = append(r.responses[cat.ID], sc.Responses...)
	}
	for _, si := range p.MicroInterventions {
		r.interventions = append(r.interventions, MicroIntervention{
			ID:     uuid.New(),
			Name:   si.Name,
			Text:   si.Text,
			Active: true,
		})
	}
	return r
}

func (r *MemoryRepository) ActiveCategories(ctx context.Context) ([]Category, error) {
	return r.categories, nil
}

func (r *MemoryRepository) ActiveTriggers(ctx context.Context) ([]Trigger, error) {
	return r.triggers, nil
}

func (r *MemoryRepository) ActiveResponses(ctx context.Context, categoryID uuid.UUID) ([]string, error) {
	return r.responses[categoryID], nil
}

func (r *MemoryRepository) ActiveInterventions(ctx context.Context) ([]MicroIntervention, error) {
	return r.interventions, nil
}
