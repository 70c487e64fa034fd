// Package backfill re-runs the emotional classifier over stored interactions
// that resolved no category. Triggers grow over time; this fills the gap for
// history written before a keyword existed.
package backfill

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campuscalm/brain/internal/classify"
	"github.com/campuscalm/brain/internal/content"
	"github.com/campuscalm/brain/internal/engine"
	"github.com/campuscalm/brain/internal/textnorm"
)

// Store is the interaction access the runner needs.
type Store interface {
	UncategorizedInteractions(ctx context.Context, after time.Time, afterID uuid.UUID, limit int) ([]engine.Interaction, error)
	SetInteractionCategory(ctx context.Context, id uuid.UUID, slug string) error
}

// Config holds the reclassification run configuration.
type Config struct {
	Since     time.Time // only interactions created after this point
	BatchSize int
	DryRun    bool   // classify and count, write nothing
	StatePath string // empty for the default location
}

// Runner pages through uncategorized interactions and links the ones the
// current trigger set can now classify.
type Runner struct {
	cfg        Config
	store      Store
	classifier *classify.Classifier
	logger     *slog.Logger
}

func NewRunner(cfg Config, repo content.Repository, s Store, logger *slog.Logger) *Runner {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}
	return &Runner{
		cfg:        cfg,
		store:      s,
		classifier: classify.New(repo),
		logger:     logger,
	}
}

// Run executes the reclassification, resuming from the saved cursor.
func (r *Runner) Run(ctx context.Context) error {
	statePath := r.cfg.StatePath
	if statePath == "" {
		statePath = defaultStatePath
	}
	state, err := LoadStateFrom(statePath)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if state.Cursor.At.Before(r.cfg.Since) {
		state.Cursor = Cursor{At: r.cfg.Since}
	}

	for {
		batch, err := r.store.UncategorizedInteractions(ctx, state.Cursor.At, state.Cursor.ID, r.cfg.BatchSize)
		if err != nil {
			return fmt.Errorf("page interactions: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, in := range batch {
			state.Scanned++
			normalized := textnorm.Normalize(in.Message)
			locale := classify.DetectLocale("", normalized)
			cat, err := r.classifier.Detect(ctx, normalized, locale)
			if err != nil {
				return fmt.Errorf("classify %s: %w", in.ID, err)
			}
			if cat == nil {
				continue
			}
			if r.cfg.DryRun {
				state.Updated++
				continue
			}
			if err := r.store.SetInteractionCategory(ctx, in.ID, cat.Slug); err != nil {
				state.AddError(fmt.Sprintf("update %s: %v", in.ID, err))
				continue
			}
			state.Updated++
		}

		last := batch[len(batch)-1]
		state.Cursor = Cursor{At: last.CreatedAt, ID: last.ID}
		if !r.cfg.DryRun {
			if err := state.Save(); err != nil {
				return fmt.Errorf("save state: %w", err)
			}
		}
	}

	r.logger.Info("reclassification finished",
		"scanned", state.Scanned,
		"updated", state.Updated,
		"errors", len(state.Errors),
		"dry_run", r.cfg.DryRun,
	)
	return nil
}
