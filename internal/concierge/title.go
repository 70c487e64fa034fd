package concierge

import (
	"regexp"
	"strings"

	"github.com/campuscalm/brain/internal/textnorm"
)

var (
	quotedPattern = regexp.MustCompile(`["“”']([^"“”']{2,})["“”']`)
	colonPattern  = regexp.MustCompile(`(?i)(?:tarefa|evento|task|event|lembrete)\s*:\s*(.+)`)
)

// Filler words stripped from the front of a message when hunting for a
// trailing title phrase.
var leadingFiller = map[string]bool{
	"cria": true, "criar": true, "crie": true, "nova": true, "novo": true,
	"adicionar": true, "adiciona": true, "anotar": true, "anota": true,
	"marcar": true, "marca": true, "agendar": true, "agenda": true,
	"tarefa": true, "evento": true, "lembrete": true, "uma": true, "um": true,
	"por": true, "favor": true, "pra": true, "para": true, "de": true,
	"me": true, "lembrar": true, "quero": true, "preciso": true,
	"create": true, "add": true, "new": true, "task": true, "event": true,
	"a": true, "an": true, "the": true, "to": true, "please": true,
}

// Bare command echoes that must not become titles.
var genericEchoes = []string{
	"criar tarefa", "nova tarefa", "criar evento", "novo evento",
	"criar uma tarefa", "criar um evento", "marcar evento", "agendar evento",
	"create task", "create event", "new task", "new event",
}

// ExtractTitle pulls a usable title out of the triggering message, letting the
// flow skip straight to the date/time step. It tries quoted text, then a
// "tarefa: X" colon pattern, then the trailing phrase left after stripping
// command filler — accepted only when it has at least two words and is not
// itself a generic command echo.
func ExtractTitle(message string) (string, bool) {
	if m := quotedPattern.FindStringSubmatch(message); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" {
			return title, true
		}
	}

	if m := colonPattern.FindStringSubmatch(message); m != nil {
		title := strings.TrimSpace(m[1])
		if title != "" && !isGenericEcho(title) {
			return title, true
		}
	}

	fields := strings.Fields(strings.TrimSpace(message))
	start := 0
	for start < len(fields) {
		if !leadingFiller[textnorm.Normalize(fields[start])] {
			break
		}
		start++
	}
	trailing := strings.Join(fields[start:], " ")
	if len(fields[start:]) >= 2 && !isGenericEcho(trailing) {
		return trailing, true
	}
	return "", false
}

func isGenericEcho(candidate string) bool {
	normalized := textnorm.Normalize(candidate)
	for _, echo := range genericEchoes {
		if normalized == echo {
			return true
		}
	}
	return false
}
