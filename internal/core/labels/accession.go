package labels

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agenthands/knetlabel/internal/core/model"
)

// PriorityFunc ranks accessions before any other criterion, lower wins.
type PriorityFunc func(acc model.ConceptAccession) int

// Maize gene ids of the EB kind win over the D kind.
var (
	maizeEBPattern = regexp.MustCompile(`^ZM.+EB[0-9].*$`)
	maizeDPattern  = regexp.MustCompile(`^ZM.+D[0-9].*$`)
)

type accessionCandidate struct {
	text     string
	priority int
}

// maizeCompare returns -1 when a is an EB-style maize id and b a D-style one,
// 1 for the reverse and 0 otherwise. An id matching both patterns is neutral.
func maizeCompare(a, b string) int {
	aEB, aD := maizeEBPattern.MatchString(a), maizeDPattern.MatchString(a)
	bEB, bD := maizeEBPattern.MatchString(b), maizeDPattern.MatchString(b)
	switch {
	case aEB && !aD && bD && !bEB:
		return -1
	case bEB && !bD && aD && !aEB:
		return 1
	}
	return 0
}

func compareText(a, b string) int {
	if la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b); la != lb {
		if la < lb {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

// compareAccessions is the full accession ordering: priority, then the maize
// rule, then length, then ordinal text order.
func compareAccessions(a, b accessionCandidate) int {
	if a.priority != b.priority {
		if a.priority < b.priority {
			return -1
		}
		return 1
	}
	if c := maizeCompare(a.text, b.text); c != 0 {
		return c
	}
	return compareText(a.text, b.text)
}

func selectAccession(accs []model.ConceptAccession, useUnique bool, priority PriorityFunc) string {
	if len(accs) == 0 {
		return ""
	}

	candidates := make([]accessionCandidate, 0, len(accs))
	for _, acc := range accs {
		if acc.Ambiguous == useUnique {
			continue
		}
		text := strings.TrimSpace(acc.Accession)
		if text == "" {
			continue
		}
		c := accessionCandidate{text: text}
		if priority != nil {
			c.priority = priority(acc)
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return ""
	}

	// The maize rule is not transitive together with length/text order, so a
	// plain min-fold would depend on input order. Fix the order first.
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		return compareText(a.text, b.text) < 0
	})

	best := candidates[0]
	for _, c := range candidates[1:] {
		if compareAccessions(c, best) < 0 {
			best = c
		}
	}
	return best.text
}

// KnownSourcePriority favours accessions from curated gene databases.
func KnownSourcePriority(acc model.ConceptAccession) int {
	source := strings.TrimSpace(acc.Source)
	text := strings.TrimSpace(acc.Accession)
	switch {
	case strings.HasPrefix(source, "ENSEMBL"):
		return -1
	case source == "PHYTOZOME":
		return -1
	case source == "TAIR" && strings.HasPrefix(text, "AT") && !strings.Contains(text, "."):
		return -1
	}
	return 0
}

// BestAccession picks the best non-ambiguous accession, falling back to the
// ambiguous ones. It returns "" when no accession has a non-blank text.
func BestAccession(accs []model.ConceptAccession) string {
	if result := selectAccession(accs, true, nil); result != "" {
		return result
	}
	return selectAccession(accs, false, nil)
}

// BestGeneAccession is BestAccession with KnownSourcePriority applied at both passes.
func BestGeneAccession(accs []model.ConceptAccession) string {
	if result := selectAccession(accs, true, KnownSourcePriority); result != "" {
		return result
	}
	return selectAccession(accs, false, KnownSourcePriority)
}

func ConceptAccession(c *model.Concept) (string, error) {
	if c == nil {
		return "", ErrNilConcept
	}
	return BestAccession(c.Accessions), nil
}

func ConceptGeneAccession(c *model.Concept) (string, error) {
	if c == nil {
		return "", ErrNilConcept
	}
	return BestGeneAccession(c.Accessions), nil
}

// canonicalAccession applies the accession policy of the concept type.
func canonicalAccession(c *model.Concept) (string, error) {
	if IsGeneOrProtein(c.TypeID) {
		return ConceptGeneAccession(c)
	}
	return ConceptAccession(c)
}
