package labels

import (
	"strings"

	"github.com/agenthands/knetlabel/internal/core/model"
)

func accessionTexts(c *model.Concept) map[string]struct{} {
	accs := make(map[string]struct{}, len(c.Accessions))
	for _, acc := range c.Accessions {
		accs[strings.TrimSpace(acc.Accession)] = struct{}{}
	}
	return accs
}

func withoutAccessions(names []model.ConceptName, accs map[string]struct{}) []model.ConceptName {
	out := make([]model.ConceptName, 0, len(names))
	for _, n := range names {
		if _, isAcc := accs[strings.TrimSpace(n.Name)]; isAcc {
			continue
		}
		out = append(out, n)
	}
	return out
}

// RemoveAccessionDuplicates returns the concept's names without those equal to
// one of its accessions. ok is false when there is no alternative to offer,
// ie, the concept has fewer than two names, and the caller should keep the
// original names.
func RemoveAccessionDuplicates(c *model.Concept) (names []model.ConceptName, ok bool, err error) {
	if c == nil {
		return nil, false, ErrNilConcept
	}
	if len(c.Names) < 2 {
		return nil, false, nil
	}
	return withoutAccessions(c.Names, accessionTexts(c)), true, nil
}

// filterAfterSelection is RemoveAccessionDuplicates for a name already picked
// from the concept: filtering only happens when that name is an accession.
func filterAfterSelection(c *model.Concept, selected string) ([]model.ConceptName, bool, error) {
	found := false
	for _, n := range c.Names {
		if strings.TrimSpace(n.Name) == selected {
			found = true
			break
		}
	}
	if !found {
		return nil, false, ErrForeignName
	}

	accs := accessionTexts(c)
	if _, isAcc := accs[selected]; !isAcc {
		return nil, false, nil
	}
	if len(c.Names) < 2 {
		return nil, false, nil
	}
	return withoutAccessions(c.Names, accs), true, nil
}

// BestConceptName runs the name path only. With filterAccessions, a best name
// that is also an accession is replaced by the best of the other names, if any.
func BestConceptName(c *model.Concept, filterAccessions bool) (string, error) {
	if c == nil {
		return "", ErrNilConcept
	}
	best := BestName(c.Names)
	if !filterAccessions || best == "" {
		return best, nil
	}

	filtered, ok, err := filterAfterSelection(c, best)
	if err != nil {
		return "", err
	}
	if !ok {
		return best, nil
	}
	if alt := BestName(filtered); alt != "" {
		return alt, nil
	}
	return best, nil
}
