package engine

import (
	"time"

	"github.com/campuscalm/brain/internal/classify"
)

// contextualOverride inspects the bounded recent history (newest first) and
// returns a contextual reply that replaces the plain category reply, or ""
// when no rule fires. Rules only run when a category resolved for the turn.
func (e *Engine) contextualOverride(history []Interaction, categorySlug string, locale classify.Locale, lastReply string, now time.Time) string {
	switch categorySlug {
	case slugStress:
		if repeatStreak(history, slugStress, e.settings.StressRepeatCount) {
			return e.selector.Choose(localized(stressRepeatReplies, locale), lastReply)
		}
	case slugEvolution:
		if repeatStreak(history, slugEvolution, e.settings.EvolutionRepeatCount) {
			return e.selector.Choose(localized(evolutionRepeatReplies, locale), lastReply)
		}
		cutoff := now.Add(-e.settings.TransitionWindow)
		for _, in := range history {
			if in.CategorySlug == slugStress && in.CreatedAt.After(cutoff) {
				return e.selector.Choose(localized(stressToEvolutionReplies, locale), lastReply)
			}
		}
	}
	return ""
}

// repeatStreak reports whether the current turn is the n-th consecutive one
// carrying the slug. The turn itself counts as the latest repeat, so only the
// n-1 newest history entries need to match.
func repeatStreak(history []Interaction, slug string, n int) bool {
	if n <= 0 || len(history) < n-1 {
		return false
	}
	for _, in := range history[:n-1] {
		if in.CategorySlug != slug {
			return false
		}
	}
	return true
}
