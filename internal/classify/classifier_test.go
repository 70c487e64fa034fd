package classify

import (
	"context"
	"strings"
	"testing"

	"github.com/campuscalm/brain/internal/content"
	"github.com/campuscalm/brain/internal/textnorm"
)

func testRepo(t *testing.T) content.Repository {
	t.Helper()
	pack, err := content.ParsePack([]byte(`
categories:
  - slug: estresse
    name: Estresse
    emoji: "😵"
    triggers:
      - "ansioso, ansiedade, nervoso, sobrecarregado, medo de reprovar"
    responses: ["r1"]
  - slug: evolucao
    name: Evolução
    emoji: "🚀"
    triggers:
      - "consegui, terminei, avancei"
    responses: ["r1"]
  - slug: social
    name: Social
    emoji: "🙌"
    triggers:
      - "obrigado, valeu, show, top, oi, bom dia"
    responses: ["r1"]
  - slug: duvida
    name: Dúvida
    emoji: "🤔"
    triggers:
      - "confuso, perdido, por onde comecar"
    responses: ["r1"]
`))
	if err != nil {
		t.Fatalf("parse pack: %v", err)
	}
	return content.NewMemoryRepository(pack)
}

func detect(t *testing.T, repo content.Repository, message string, locale Locale) string {
	t.Helper()
	cat, err := New(repo).Detect(context.Background(), textnorm.Normalize(message), locale)
	if err != nil {
		t.Fatalf("Detect(%q) error: %v", message, err)
	}
	if cat == nil {
		return ""
	}
	return cat.Slug
}

func TestDetectSingleKeyword(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"anxiety keyword", "estou muito ansioso", "estresse"},
		{"accented form matches", "muita ANSIEDADE hoje", "estresse"},
		{"evolution keyword", "finalmente consegui entregar", "evolucao"},
		{"social greeting", "bom dia", "social"},
		{"phrase trigger", "nao sei por onde comecar nos estudos", "duvida"},
		{"no partial word hit", "o topico de hoje e dificil", ""},
		{"nothing matches", "mensagem completamente neutra qwerty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detect(t, testRepo(t), tt.message, LocalePT); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestWeakPositiveSuppressedByNegative(t *testing.T) {
	repo := testRepo(t)
	// "show" alone reads social.
	if got := detect(t, repo, "show", LocalePT); got != "social" {
		t.Fatalf("lone weak positive = %q, want social", got)
	}
	// Alongside a distress keyword it must not vote.
	if got := detect(t, repo, "show mas estou muito ansioso com tudo isso", LocalePT); got != "estresse" {
		t.Fatalf("weak positive + negative = %q, want estresse", got)
	}
}

func TestSocialTieBreak(t *testing.T) {
	repo := testRepo(t)

	// Short message: social survives the tie and outranks duvida.
	if got := detect(t, repo, "valeu mas to perdido", LocalePT); got != "social" {
		t.Fatalf("short tie = %q, want social", got)
	}

	// Long message without a strong social hint: social is dropped from the tie.
	long := "oi pessoal hoje eu finalmente consegui avancar bastante" +
		strings.Repeat(" em varias materias", 2)
	if got := detect(t, repo, long, LocalePT); got != "evolucao" {
		t.Fatalf("long tie = %q, want evolucao", got)
	}

	// Long message with "obrigado": social stays and wins only if it tops the score.
	if got := detect(t, repo, "muito obrigado pela ajuda de ontem, fez toda diferenca mesmo viu", LocalePT); got != "social" {
		t.Fatalf("obrigado message = %q, want social", got)
	}
}

func TestEnglishHintsAppliedOnlyForEnglishLocale(t *testing.T) {
	repo := testRepo(t)
	msg := "i am so stressed about everything"
	if got := detect(t, repo, msg, LocaleEN); got != "estresse" {
		t.Errorf("english locale = %q, want estresse", got)
	}
	if got := detect(t, repo, msg, LocalePT); got != "" {
		t.Errorf("portuguese locale = %q, want none (hints not consulted)", got)
	}
}

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name       string
		explicit   string
		normalized string
		want       Locale
	}{
		{"explicit en header", "en-US", "qualquer coisa", LocaleEN},
		{"explicit pt beats hints", "pt-BR", "i feel tired", LocalePT},
		{"two hint words", "", "i am feeling anxious", LocaleEN},
		{"single loanword stays pt", "", "fiz um show na prova", LocalePT},
		{"default", "", "estou cansado", LocalePT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLocale(tt.explicit, tt.normalized); got != tt.want {
				t.Errorf("DetectLocale(%q, %q) = %q, want %q", tt.explicit, tt.normalized, got, tt.want)
			}
		})
	}
}
