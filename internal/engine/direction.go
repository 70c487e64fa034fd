package engine

import (
	"strings"

	"github.com/campuscalm/brain/internal/classify"
	"github.com/campuscalm/brain/internal/textnorm"
)

const (
	shortDirectionMaxChars = 20
	shortDirectionMaxWords = 3
)

// isShortDirectionMessage reports whether the message is a terse "what do I
// do" style question.
func isShortDirectionMessage(normalized string) bool {
	if len(normalized) > shortDirectionMaxChars && len(strings.Fields(normalized)) > shortDirectionMaxWords {
		return false
	}
	for _, p := range shortDirectionPatterns {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}

// shortDirectionEntry decides whether this turn opens the scripted
// micro-flow: a terse direction question right after a stress disclosure.
func shortDirectionEntry(normalized string, history []Interaction) bool {
	if !isShortDirectionMessage(normalized) {
		return false
	}
	if len(history) == 0 {
		return false
	}
	prev := history[0]
	if prev.CategorySlug == slugStress {
		return true
	}
	prevNorm := textnorm.Normalize(prev.Message)
	prevWords := textnorm.Words(prevNorm)
	return textnorm.ContainsAny(prevNorm, prevWords, anxietyKeywords) ||
		textnorm.ContainsAny(prevNorm, prevWords, examKeywords)
}

// shortDirectionFollowUp threads the flow's later steps. It is keyed off the
// reply the user last saw, not the current category: when that reply was a
// main-direction script, a positive closure branches to "ok, execute" and a
// repeated question or negative answer to body regulation. Anything else
// breaks the flow silently.
func (e *Engine) shortDirectionFollowUp(normalized, lastReply string, locale classify.Locale) (string, bool) {
	if lastReply != shortDirectionMain[classify.LocalePT] && lastReply != shortDirectionMain[classify.LocaleEN] {
		return "", false
	}
	negative := matchesAnyPhrase(normalized, negativeClosurePhrases)
	if !negative && matchesAnyPhrase(normalized, positiveClosurePhrases) {
		return e.selector.Choose(localized(shortDirectionOK, locale), lastReply), true
	}
	if negative || isShortDirectionMessage(normalized) {
		return e.selector.Choose(localized(shortDirectionBody, locale), lastReply), true
	}
	return "", false
}

func matchesAnyPhrase(normalized string, phrases []string) bool {
	words := textnorm.Words(normalized)
	for _, p := range phrases {
		if textnorm.Contains(normalized, words, p) {
			return true
		}
	}
	return false
}
