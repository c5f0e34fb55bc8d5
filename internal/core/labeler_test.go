package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/knetlabel/internal/config"
	"github.com/agenthands/knetlabel/internal/core/labels"
	"github.com/agenthands/knetlabel/internal/core/model"
	"github.com/agenthands/knetlabel/internal/driver"
)

func newTestLabeler(d *MockDriver) *Labeler {
	cfg := config.Default()
	cfg.Concurrency.Labeling = 2
	cfg.Concurrency.PageSize = 2

	l := NewLabeler(d, cfg, nil)
	l.RunIDGenerator = func() string { return "run-1" }
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	l.Now = func() time.Time { return start }
	return l
}

func TestSaveConcept(t *testing.T) {
	d := &MockDriver{}
	l := newTestLabeler(d)

	err := l.SaveConcept(context.Background(), model.Concept{
		ID: "c1", TypeID: "Gene", PID: "p1",
		Names: []model.ConceptName{{Name: "FLC", Preferred: true}},
	})
	require.NoError(t, err)

	calls := d.CallsFor(driver.SaveConceptQuery)
	require.Len(t, calls, 1)
	assert.Equal(t, "c1", calls[0].Params["id"])
	assert.Equal(t, "Gene", calls[0].Params["type"])
	assert.Equal(t, []map[string]interface{}{{"name": "FLC", "preferred": true}}, calls[0].Params["names"])

	err = l.SaveConcept(context.Background(), model.Concept{TypeID: "Gene"})
	assert.ErrorIs(t, err, labels.ErrInvalidArgument)

	d.Err = errors.New("connection reset")
	err = l.SaveConcept(context.Background(), model.Concept{ID: "c2"})
	assert.ErrorContains(t, err, "failed to save concept c2")
}

func TestGetConcept(t *testing.T) {
	d := &MockDriver{
		MockResult: neo4j.EagerResult{Records: []*neo4j.Record{
			conceptRecord("c1", "Gene", "p1",
				[]interface{}{nameValue("FLC", true)},
				[]interface{}{accValue("AT5G10140", "TAIR", false)}),
		}},
	}
	l := newTestLabeler(d)

	c, err := l.GetConcept(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Gene", c.TypeID)
	assert.Equal(t, []model.ConceptName{{Name: "FLC", Preferred: true}}, c.Names)
	assert.Equal(t, "c1", d.Calls[0].Params["id"])

	d.MockResult = neo4j.EagerResult{}
	_, err = l.GetConcept(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrConceptNotFound)
}

func TestLabelConcept(t *testing.T) {
	d := &MockDriver{
		MockResult: neo4j.EagerResult{Records: []*neo4j.Record{
			conceptRecord("c1", "Gene", "p1", nil,
				[]interface{}{accValue("Zm1D1", "OTHER", false), accValue("Zm1EB1", "ENSEMBL", false)}),
		}},
	}
	l := newTestLabeler(d)

	res, err := l.LabelConcept(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, model.ConceptLabel{ConceptID: "c1", Label: "Zm1EB1", Accession: "Zm1EB1", Stage: model.StageAccession}, res)
}

func TestLabel_UsesConfig(t *testing.T) {
	l := newTestLabeler(&MockDriver{})
	l.Config.Labels.FilterAccessions = true

	c := &model.Concept{
		ID:         "c1",
		Names:      []model.ConceptName{{Name: "AT1G01010", Preferred: true}, {Name: "NAC001"}},
		Accessions: []model.ConceptAccession{{Accession: "AT1G01010", Source: "TAIR"}},
	}
	res, err := l.Label(c)
	require.NoError(t, err)
	assert.Equal(t, "NAC001", res.Label)

	// Per-call options win over the config
	res, err = l.Label(c, labels.WithAccessionFiltering(false))
	require.NoError(t, err)
	assert.Equal(t, "AT1G01010", res.Label)

	_, err = l.Label(nil)
	assert.ErrorIs(t, err, labels.ErrNilConcept)
}

func TestLabelAll(t *testing.T) {
	l := newTestLabeler(&MockDriver{})

	concepts := []model.Concept{
		{ID: "a", Names: []model.ConceptName{{Name: "Kinase"}, {Name: "ABC Kinase"}}},
		{ID: "b", PID: " pid-b "},
		{ID: "c", TypeID: "Protein", Accessions: []model.ConceptAccession{{Accession: "P1", Source: "UNIPROT"}}},
		{ID: "d"},
	}
	res, err := l.LabelAll(context.Background(), concepts)
	require.NoError(t, err)
	require.Len(t, res, 4)

	assert.Equal(t, "a", res[0].ConceptID)
	assert.Equal(t, "ABC Kinase", res[0].Label)
	assert.Equal(t, "pid-b", res[1].Label)
	assert.Equal(t, model.StagePID, res[1].Stage)
	assert.Equal(t, "P1", res[2].Label)
	assert.Equal(t, model.StageNone, res[3].Stage)
}

func TestLabelAll_Cancelled(t *testing.T) {
	l := newTestLabeler(&MockDriver{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.LabelAll(ctx, []model.Concept{{ID: "a"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRelabel(t *testing.T) {
	d := &MockDriver{
		Queued: map[string][]neo4j.EagerResult{
			driver.ListConceptsQuery: {
				{Records: []*neo4j.Record{
					conceptRecord("c1", "Gene", "p1", []interface{}{nameValue("FLC", true)}, nil),
					conceptRecord("c2", "Gene", "p2", nil, []interface{}{accValue("AT1G01010", "TAIR", false)}),
				}},
				{Records: []*neo4j.Record{
					conceptRecord("c3", "Gene", "p3", nil, nil),
				}},
			},
			driver.SaveConceptLabelsQuery: {writtenResult(2), writtenResult(1)},
		},
	}
	l := newTestLabeler(d)

	stats, err := l.Relabel(context.Background(), "Gene")
	require.NoError(t, err)

	assert.Equal(t, "run-1", stats.RunID)
	assert.Equal(t, 3, stats.Concepts)
	assert.Equal(t, 3, stats.Written)
	assert.Equal(t, map[string]int{"name": 1, "accession": 1, "pid": 1}, stats.Stages)

	lists := d.CallsFor(driver.ListConceptsQuery)
	require.Len(t, lists, 2, "the short second page ends the run")
	assert.Equal(t, "Gene", lists[0].Params["type"])
	assert.Equal(t, 0, lists[0].Params["skip"])
	assert.Equal(t, 2, lists[1].Params["skip"])

	saves := d.CallsFor(driver.SaveConceptLabelsQuery)
	require.Len(t, saves, 2)
	assert.Equal(t, "run-1", saves[0].Params["run_id"])
	assert.Equal(t, "2026-01-02T03:04:05Z", saves[0].Params["labelled_at"])
	assert.Equal(t, []map[string]interface{}{
		{"id": "c1", "label": "FLC", "stage": "name", "accession": ""},
		{"id": "c2", "label": "AT1G01010", "stage": "accession", "accession": "AT1G01010"},
	}, saves[0].Params["labels"])
}

func TestRelabel_Empty(t *testing.T) {
	d := &MockDriver{}
	l := newTestLabeler(d)

	stats, err := l.Relabel(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, stats.Concepts)
	assert.Empty(t, d.CallsFor(driver.SaveConceptLabelsQuery))
}

func TestRelabel_DriverError(t *testing.T) {
	d := &MockDriver{Err: errors.New("boom")}
	l := newTestLabeler(d)

	_, err := l.Relabel(context.Background(), "")
	assert.ErrorContains(t, err, "relabel run-1")
	assert.ErrorContains(t, err, "boom")
}

func TestRelabelConcept(t *testing.T) {
	d := &MockDriver{
		Queued: map[string][]neo4j.EagerResult{
			driver.GetConceptQuery: {{Records: []*neo4j.Record{
				conceptRecord("c1", "Gene", "p1",
					[]interface{}{nameValue("FLC", true)},
					[]interface{}{accValue("AT5G10140", "TAIR", false)}),
			}}},
			driver.SaveConceptLabelQuery: {{Records: []*neo4j.Record{{Keys: []string{"id"}, Values: []interface{}{"c1"}}}}},
		},
	}
	l := newTestLabeler(d)

	res, err := l.RelabelConcept(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "FLC", res.Label)

	saves := d.CallsFor(driver.SaveConceptLabelQuery)
	require.Len(t, saves, 1)
	assert.Equal(t, map[string]interface{}{
		"id":          "c1",
		"label":       "FLC",
		"stage":       "name",
		"accession":   "AT5G10140",
		"run_id":      "run-1",
		"labelled_at": "2026-01-02T03:04:05Z",
	}, saves[0].Params)
}

func TestRelabelConcept_NotFound(t *testing.T) {
	d := &MockDriver{}
	l := newTestLabeler(d)

	_, err := l.RelabelConcept(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrConceptNotFound)
	assert.Empty(t, d.CallsFor(driver.SaveConceptLabelQuery), "nothing is written for an unknown concept")

	// Deleted between the read and the write.
	d.Queued = map[string][]neo4j.EagerResult{
		driver.GetConceptQuery: {{Records: []*neo4j.Record{conceptRecord("c2", "Gene", "p2", nil, nil)}}},
	}
	_, err = l.RelabelConcept(context.Background(), "c2")
	assert.ErrorIs(t, err, ErrConceptNotFound)
	assert.Len(t, d.CallsFor(driver.SaveConceptLabelQuery), 1)
}
