package classify

import "strings"

// Locale is the detected conversation language. Matching covers exactly two:
// Portuguese (the default) and English.
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
)

// Words that mark an English-language message when no explicit locale signal
// came with the request. Best-effort inference, not a contract: a missed
// detection only means the secondary hint tables are not consulted.
var englishHints = []string{
	"i", "am", "feel", "feeling", "my", "cant", "dont", "im",
	"anxious", "stressed", "tired", "exhausted", "overwhelmed",
	"thanks", "thank", "hello", "help", "what", "should", "do",
}

// DetectLocale resolves the conversation locale from an explicit signal
// (cookie or header value) or, failing that, from English hint words in the
// normalized message. Two or more hint words flip the locale to English so a
// stray loanword does not.
func DetectLocale(explicit, normalized string) Locale {
	switch strings.ToLower(strings.TrimSpace(explicit)) {
	case "en", "en-us", "en-gb":
		return LocaleEN
	case "pt", "pt-br", "pt-pt":
		return LocalePT
	}

	hits := 0
	words := make(map[string]bool)
	for _, w := range strings.Fields(normalized) {
		words[w] = true
	}
	for _, hint := range englishHints {
		if words[hint] {
			hits++
		}
		if hits >= 2 {
			return LocaleEN
		}
	}
	return LocalePT
}
