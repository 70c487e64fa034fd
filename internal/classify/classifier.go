// Package classify scores chat messages against the emotional category
// reference data and resolves a single winning category per turn.
package classify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/campuscalm/brain/internal/content"
	"github.com/campuscalm/brain/internal/textnorm"
)

// Colloquial affirmations that also appear as social triggers. They score
// nothing when the message carries a distress keyword, so a stray "show" or
// "top" cannot mask genuine distress.
var weakPositives = map[string]bool{
	"show": true, "top": true, "boa": true, "legal": true, "massa": true,
}

var negativeKeywords = []string{
	"ansioso", "ansiosa", "ansiedade", "nervoso", "nervosa", "panico",
	"estressado", "estressada", "pressao", "sobrecarregado", "sobrecarregada",
	"cansado", "cansada", "exausto", "exausta", "esgotado", "esgotada",
	"desmotivado", "desmotivada", "desanimado", "desanimada", "triste",
	"medo", "mal", "pessimo", "pessima",
}

// English hint words scored per category when the conversation locale is
// English. Sourced independently of the trigger table, which is Portuguese.
var englishCategoryHints = map[string][]string{
	"estresse": {
		"anxious", "anxiety", "nervous", "stressed", "overwhelmed", "panic",
		"pressure", "freaking out", "too much",
	},
	"desmotivacao": {
		"unmotivated", "no motivation", "lazy", "give up", "giving up",
		"dont want to study",
	},
	"foco_alto": {
		"focused", "productive", "in the zone", "on a roll",
	},
	"duvida": {
		"confused", "lost", "dont understand", "how do i study", "where to start",
	},
	"cansaco_mental": {
		"tired", "exhausted", "burned out", "burnout", "cant sleep", "drained",
	},
	"evolucao": {
		"i did it", "i passed", "i finished", "improved", "progress", "nailed it",
	},
	"social": {
		"thanks", "thank you", "hello", "hi", "good morning", "good night", "bye",
	},
}

// Tie-break priority, strongest claim first. Categories outside this list
// lose ties to ones on it, and ties among unknowns fall back to the
// alphabetically smallest slug so the outcome stays deterministic.
var priorityOrder = []string{
	"evolucao", "foco_alto", "social", "duvida",
	"desmotivacao", "cansaco_mental", "estresse",
}

// Substrings that mark an explicitly social message; they keep the social
// category in multi-way ties.
var strongSocialHints = []string{"obrigad", "thanks", "thank you", "valeu", "gratidao"}

const shortSocialLimit = 40

// Classifier resolves categories from reference data.
type Classifier struct {
	repo content.Repository
}

func New(repo content.Repository) *Classifier {
	return &Classifier{repo: repo}
}

// Detect scores every active category against the normalized message and
// returns the winner, or nil when nothing scores.
func (c *Classifier) Detect(ctx context.Context, normalized string, locale Locale) (*content.Category, error) {
	categories, err := c.repo.ActiveCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	triggers, err := c.repo.ActiveTriggers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load triggers: %w", err)
	}

	words := textnorm.Words(normalized)
	hasNegative := textnorm.ContainsAny(normalized, words, negativeKeywords)

	active := make(map[string]content.Category, len(categories))
	scores := make(map[string]int, len(categories))
	for _, cat := range categories {
		if !cat.Active {
			continue
		}
		active[cat.Slug] = cat
	}

	for _, tr := range triggers {
		if !tr.Active {
			continue
		}
		var slug string
		for _, cat := range categories {
			if cat.ID == tr.CategoryID {
				slug = cat.Slug
				break
			}
		}
		if _, ok := active[slug]; !ok {
			continue
		}
		for _, kw := range textnorm.SplitKeywords(tr.Keywords) {
			if !textnorm.Contains(normalized, words, kw) {
				continue
			}
			if hasNegative && weakPositives[kw] {
				continue
			}
			scores[slug] += textnorm.Weight(kw)
		}
	}

	if locale == LocaleEN {
		for slug, hints := range englishCategoryHints {
			if _, ok := active[slug]; !ok {
				continue
			}
			for _, kw := range hints {
				if !textnorm.Contains(normalized, words, kw) {
					continue
				}
				if hasNegative && weakPositives[kw] {
					continue
				}
				scores[slug] += textnorm.Weight(kw)
			}
		}
	}

	winner := resolveWinner(scores, normalized)
	if winner == "" {
		return nil, nil
	}
	cat := active[winner]
	return &cat, nil
}

// resolveWinner applies the tie-break policy: drop social from multi-way ties
// unless the message is short or explicitly social, then the fixed priority
// order, then alphabetical slug.
func resolveWinner(scores map[string]int, normalized string) string {
	max := 0
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	if max == 0 {
		return ""
	}

	var tied []string
	for slug, s := range scores {
		if s == max {
			tied = append(tied, slug)
		}
	}

	if len(tied) > 1 && contains(tied, "social") && !sociallyAnchored(normalized) {
		tied = remove(tied, "social")
	}

	for _, slug := range priorityOrder {
		if contains(tied, slug) {
			return slug
		}
	}
	sort.Strings(tied)
	return tied[0]
}

func sociallyAnchored(normalized string) bool {
	if len(normalized) <= shortSocialLimit {
		return true
	}
	for _, hint := range strongSocialHints {
		if strings.Contains(normalized, hint) {
			return true
		}
	}
	return false
}

func contains(slugs []string, slug string) bool {
	for _, s := range slugs {
		if s == slug {
			return true
		}
	}
	return false
}

func remove(slugs []string, slug string) []string {
	out := slugs[:0]
	for _, s := range slugs {
		if s != slug {
			out = append(out, s)
		}
	}
	return out
}
