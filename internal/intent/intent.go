// Package intent decides what a chat message is trying to do before any
// emotional classification runs: ask for support, create a task, create a
// calendar event, make small talk, or none of those.
package intent

import (
	"strings"

	"github.com/campuscalm/brain/internal/textnorm"
	"github.com/campuscalm/brain/internal/when"
)

// Mode is the resolved handling mode for a turn.
type Mode string

const (
	ModeEmotional Mode = "emotional_support"
	ModeTask      Mode = "create_task"
	ModeEvent     Mode = "create_event"
	ModeSocial    Mode = "social"
	ModeGeneral   Mode = "general"
)

// emotionalThreshold is the score at which emotional support overrides
// everything else, including an in-progress concierge flow.
const emotionalThreshold = 4

var emotionalKeywords = []string{
	"ansioso", "ansiosa", "ansiedade", "nervoso", "nervosa", "panico",
	"estressado", "estressada", "sobrecarregado", "sobrecarregada",
	"desmotivado", "desmotivada", "desanimado", "desanimada", "cansado",
	"cansada", "exausto", "exausta", "triste", "medo", "preocupado",
	"preocupada", "anxious", "stressed", "overwhelmed", "exhausted", "worried",
}

var feelingPhrases = []string{
	"estou me sentindo", "me sinto", "to me sentindo", "estou sentindo",
	"i feel", "i am feeling", "im feeling",
}

var examContextKeywords = []string{
	"prova", "teste", "exame", "apresentacao", "seminario", "avaliacao",
	"banca", "trabalho", "entrega", "exam", "test", "presentation", "deadline",
}

var taskKeywords = []string{
	"tarefa", "criar tarefa", "nova tarefa", "adicionar tarefa", "anotar",
	"lembrar de", "lembrete", "task", "to do", "todo",
}

var obligationPhrases = []string{
	"preciso", "tenho que", "tenho de", "nao posso esquecer",
	"need to", "have to", "must",
}

var eventKeywords = []string{
	"evento", "agendar", "marcar", "agenda", "compromisso", "reuniao",
	"prova", "apresentacao", "aula", "consulta", "encontro",
	"schedule", "meeting", "appointment",
}

var socialKeywords = []string{
	"oi", "ola", "bom dia", "boa tarde", "boa noite", "tchau", "obrigado",
	"obrigada", "valeu", "hello", "hi", "hey", "thanks", "thank you", "bye",
}

// Scores carries the per-mode integer scores for one message.
type Scores struct {
	Emotional int
	Task      int
	Event     int
	Social    int
	General   int
}

// Score computes the five mode scores from the raw message. The message is
// normalized internally; date/time hints come from the raw text because
// normalization eats clock punctuation.
func Score(message string) Scores {
	normalized := textnorm.Normalize(message)
	words := textnorm.Words(normalized)

	hasDate := when.HasDateHint(message)
	hasTime := when.HasTimeHint(message)

	var s Scores

	emotionalHit := textnorm.ContainsAny(normalized, words, emotionalKeywords)
	if emotionalHit {
		s.Emotional += 3
	}
	if containsAnyPhrase(normalized, feelingPhrases) {
		s.Emotional += 2
	}
	if emotionalHit && textnorm.ContainsAny(normalized, words, examContextKeywords) {
		s.Emotional += 2
	}

	if textnorm.ContainsAny(normalized, words, taskKeywords) {
		s.Task += 3
	}
	if containsAnyPhrase(normalized, obligationPhrases) {
		s.Task += 2
	}
	if hasDate && !hasTime {
		s.Task++
	}

	if textnorm.ContainsAny(normalized, words, eventKeywords) {
		s.Event += 3
	}
	if hasTime {
		s.Event += 3
	}
	if hasDate && hasTime {
		s.Event += 2
	}

	if textnorm.ContainsAny(normalized, words, socialKeywords) {
		s.Social += 3
	}
	if len(strings.Fields(normalized)) <= 3 {
		s.Social++
	}

	if s.Emotional == 0 && s.Task == 0 && s.Event == 0 && s.Social == 0 {
		s.General = 1
	}
	return s
}

// Decide resolves a single mode from the scores. With a live concierge flow,
// the flow's own mode continues unless the emotional score clears the
// override threshold: a user in a flow expressing real distress is rescued
// into support. Without a flow, emotional wins at threshold; otherwise the
// highest score wins with ties broken event > task > social > general.
func Decide(s Scores, pendingMode Mode) Mode {
	if pendingMode == ModeTask || pendingMode == ModeEvent {
		if s.Emotional >= emotionalThreshold {
			return ModeEmotional
		}
		return pendingMode
	}

	if s.Emotional >= emotionalThreshold {
		return ModeEmotional
	}

	best := ModeGeneral
	bestScore := 0
	for _, c := range []struct {
		mode  Mode
		score int
	}{
		{ModeEvent, s.Event},
		{ModeTask, s.Task},
		{ModeSocial, s.Social},
	} {
		if c.score > bestScore {
			best = c.mode
			bestScore = c.score
		}
	}
	if bestScore == 0 {
		return ModeGeneral
	}
	return best
}

// HasTaskCreationIntent reports whether the message explicitly asks for a
// task: a task keyword or an obligation phrase. Mode alone is not enough to
// open a flow; the orchestrator demands matching creation intent.
func HasTaskCreationIntent(message string) bool {
	normalized := textnorm.Normalize(message)
	words := textnorm.Words(normalized)
	return textnorm.ContainsAny(normalized, words, taskKeywords) ||
		containsAnyPhrase(normalized, obligationPhrases)
}

// HasEventCreationIntent reports whether the message explicitly asks for a
// calendar event: an event keyword, or both a date and a time hint.
func HasEventCreationIntent(message string) bool {
	normalized := textnorm.Normalize(message)
	words := textnorm.Words(normalized)
	if textnorm.ContainsAny(normalized, words, eventKeywords) {
		return true
	}
	return when.HasDateHint(message) && when.HasTimeHint(message)
}

func containsAnyPhrase(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(normalized, p) {
			return true
		}
	}
	return false
}
