package engine

import (
	"github.com/campuscalm/brain/internal/classify"
	"github.com/campuscalm/brain/internal/textnorm"
)

// shieldChoice maps the turn straight to a category when the previous reply
// was the shielding menu and the message exactly matches one of its choice
// labels. Returns "" otherwise.
func shieldChoice(normalized, lastReply string) string {
	if lastReply != shieldMenuPT && lastReply != shieldMenuEN {
		return ""
	}
	return shieldChoices[normalized]
}

// shouldShield decides whether an unclassifiable turn activates the shielding
// menu: either the previous interaction also resolved no category, or the
// message repeats verbatim (after normalization) a recent generic direction
// question.
func shouldShield(normalized string, history []Interaction) bool {
	if len(history) > 0 && history[0].CategorySlug == "" {
		return true
	}
	if !isShortDirectionMessage(normalized) {
		return false
	}
	for _, in := range history {
		if textnorm.Normalize(in.Message) == normalized {
			return true
		}
	}
	return false
}

// shieldReply returns the 4-choice menu, or the shorter neutral nudge when
// the menu was already the last reply shown (anti-loop).
func shieldReply(locale classify.Locale, lastReply string) string {
	menu := shieldMenus[locale]
	if menu == "" {
		menu = shieldMenuPT
	}
	if lastReply == shieldMenuPT || lastReply == shieldMenuEN {
		if nudge, ok := shieldNudges[locale]; ok {
			return nudge
		}
		return shieldNudges[classify.LocalePT]
	}
	return menu
}
