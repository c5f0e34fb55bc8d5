package model

import "time"

// LabelStage names the step of the fallback chain that produced a label.
type LabelStage string

const (
	StageName      LabelStage = "name"
	StageAccession LabelStage = "accession"
	StagePID       LabelStage = "pid"
	StageNone      LabelStage = "none"
)

type ConceptLabel struct {
	ConceptID string     `json:"concept_id"`
	Label     string     `json:"label"`
	Name      string     `json:"name,omitempty"`      // best name, before prefix expansion
	Accession string     `json:"accession,omitempty"` // canonical external identifier
	Stage     LabelStage `json:"stage"`
}

type RelabelStats struct {
	RunID     string         `json:"run_id"`
	TypeID    string         `json:"type,omitempty"`
	Concepts  int            `json:"concepts"`
	Written   int            `json:"written"`
	Stages    map[string]int `json:"stages"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
}
