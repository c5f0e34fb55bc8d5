package model

// Concept is a graph node with a type, a stable raw identifier and the
// candidate names/accessions attached to it by the graph importer.
type Concept struct {
	ID         string             `json:"id" yaml:"id"`
	TypeID     string             `json:"type" yaml:"type"`
	PID        string             `json:"pid" yaml:"pid"`
	Names      []ConceptName      `json:"names" yaml:"names"`
	Accessions []ConceptAccession `json:"accessions" yaml:"accessions"`
}

type ConceptName struct {
	Name      string `json:"name" yaml:"name"`
	Preferred bool   `json:"preferred" yaml:"preferred"`
}

// ConceptAccession is an identifier from an external database. Ambiguous
// accessions may refer to more than one real-world entity.
type ConceptAccession struct {
	Accession string `json:"accession" yaml:"accession"`
	Ambiguous bool   `json:"ambiguous" yaml:"ambiguous"`
	Source    string `json:"source" yaml:"source"`
}
