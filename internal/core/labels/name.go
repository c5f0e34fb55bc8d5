package labels

import (
	"strings"
	"unicode/utf8"

	"github.com/agenthands/knetlabel/internal/core/model"
)

func selectName(names []model.ConceptName, onlyPreferred bool) string {
	best := ""
	for _, n := range names {
		if n.Preferred != onlyPreferred {
			continue
		}
		text := strings.TrimSpace(n.Name)
		if text == "" {
			continue
		}
		if best == "" || compareText(text, best) < 0 {
			best = text
		}
	}
	return best
}

// BestName returns the shortest, then ordinally first, preferred name. When
// no preferred name has a non-blank text, the other names are tried. Data
// often carry several preferred names, so uniqueness is not assumed.
func BestName(names []model.ConceptName) string {
	if result := selectName(names, true); result != "" {
		return result
	}
	return selectName(names, false)
}

// expandWithPrefix replaces chosen with the longest name that ends with it,
// ignoring case, so that a prefixed gene symbol wins over the bare symbol.
// Equal lengths resolve to the ordinally smallest text.
func expandWithPrefix(chosen string, names []model.ConceptName) string {
	if chosen == "" {
		return chosen
	}
	suffix := strings.ToLower(chosen)

	best, bestLen := "", -1
	for _, n := range names {
		text := strings.TrimSpace(n.Name)
		if text == "" || !strings.HasSuffix(strings.ToLower(text), suffix) {
			continue
		}
		l := utf8.RuneCountInString(text)
		if l > bestLen || (l == bestLen && text < best) {
			best, bestLen = text, l
		}
	}
	if best == "" {
		return chosen
	}
	return best
}
