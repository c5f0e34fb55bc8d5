// Package labels picks a deterministic display label and a canonical accession
// for a concept out of its candidate names and accessions.
//
// All functions are pure and safe for concurrent use. Results never depend on
// the order of the candidate slices.
package labels

import (
	"strings"
	"unicode/utf8"

	"github.com/agenthands/knetlabel/internal/core/model"
)

// Labels longer than the configured max length are always cut to this width,
// whatever the max length is. Downstream consumers rely on it.
const abbreviationWidth = 63

var geneOrProteinTypes = [...]string{"Gene", "Protein"}

func IsGeneOrProtein(typeID string) bool {
	for _, t := range geneOrProteinTypes {
		if t == typeID {
			return true
		}
	}
	return false
}

func abbreviate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// Resolve runs the whole fallback chain: best (prefix-expanded) name, then the
// best accession according to the concept type, then the PID. The result also
// carries the plain best name and the canonical accession.
func Resolve(c *model.Concept, opts ...Option) (model.ConceptLabel, error) {
	if c == nil {
		return model.ConceptLabel{}, ErrNilConcept
	}
	cfg := newResolveConfig(opts)

	names := c.Names
	if cfg.filterAccessions {
		filtered, ok, err := RemoveAccessionDuplicates(c)
		if err != nil {
			return model.ConceptLabel{}, err
		}
		if ok {
			names = filtered
		}
	}

	accession, err := canonicalAccession(c)
	if err != nil {
		return model.ConceptLabel{}, err
	}
	name, err := BestConceptName(c, cfg.filterAccessions)
	if err != nil {
		return model.ConceptLabel{}, err
	}
	result := model.ConceptLabel{
		ConceptID: c.ID,
		Name:      name,
		Accession: accession,
		Stage:     model.StageName,
	}

	label := expandWithPrefix(BestName(names), names)
	if label == "" {
		label, result.Stage = result.Accession, model.StageAccession
	}
	if label == "" {
		label, result.Stage = strings.TrimSpace(c.PID), model.StagePID
	}
	if label == "" {
		result.Stage = model.StageNone
	}

	if cfg.maxLen > 0 && utf8.RuneCountInString(label) > cfg.maxLen {
		label = abbreviate(label, abbreviationWidth)
	}
	result.Label = label
	return result, nil
}

// BestLabel returns only the label computed by Resolve.
func BestLabel(c *model.Concept, opts ...Option) (string, error) {
	res, err := Resolve(c, opts...)
	if err != nil {
		return "", err
	}
	return res.Label, nil
}
