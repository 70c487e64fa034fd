// Package reply picks reply variants while avoiding immediate repetition of
// whatever the user last saw.
package reply

import "math/rand"

// Picker chooses an index in [0, n). Injectable so tests pin outcomes.
type Picker func(n int) int

// Selector picks among candidate reply strings.
type Selector struct {
	pick Picker
}

// NewSelector builds a selector. A nil picker falls back to math/rand.
func NewSelector(pick Picker) *Selector {
	if pick == nil {
		pick = rand.Intn
	}
	return &Selector{pick: pick}
}

// Choose deduplicates candidates preserving order, excludes lastShown when at
// least two distinct candidates remain, and picks uniformly among the rest.
// Returns "" for an empty candidate list.
func (s *Selector) Choose(candidates []string, lastShown string) string {
	unique := dedupe(candidates)
	if len(unique) == 0 {
		return ""
	}
	if len(unique) > 1 && lastShown != "" {
		filtered := make([]string, 0, len(unique))
		for _, c := range unique {
			if c != lastShown {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) > 0 && len(filtered) < len(unique) {
			unique = filtered
		}
	}
	return unique[s.pick(len(unique))]
}

func dedupe(candidates []string) []string {
	seen := make(map[string]bool, len(candidates))
	unique := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	return unique
}
