//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/knetlabel/internal/config"
	"github.com/agenthands/knetlabel/internal/core"
	"github.com/agenthands/knetlabel/internal/core/common"
	"github.com/agenthands/knetlabel/internal/core/model"
	"github.com/agenthands/knetlabel/internal/driver"
	"github.com/agenthands/knetlabel/internal/logger"
)

func setup(t *testing.T) (*core.Labeler, *driver.MemgraphDriver) {
	t.Helper()
	_ = godotenv.Load("../../.env") // Try root .env

	if os.Getenv("MEMGRAPH_URI") == "" {
		t.Skip("Skipping integration test: MEMGRAPH_URI not set")
	}
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())
	cfg.Concurrency.PageSize = 2

	ctx := context.Background()
	d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close(context.Background()) })

	l := core.NewLabeler(d, cfg, logger.Nop())
	require.NoError(t, l.BuildIndices(ctx))
	return l, d
}

func TestFullFlow(t *testing.T) {
	l, d := setup(t)
	ctx := context.Background()

	typeID := "Gene"
	runTag := uuid.New().String()[:8]
	concepts := []model.Concept{
		{
			ID: "it-flc-" + runTag, TypeID: typeID, PID: "AT5G10140",
			Names:      []model.ConceptName{{Name: "AT5G10140", Preferred: true}, {Name: "FLC"}},
			Accessions: []model.ConceptAccession{{Accession: "AT5G10140", Source: "TAIR"}},
		},
		{
			ID: "it-zm-" + runTag, TypeID: typeID, PID: "zm-raw",
			Accessions: []model.ConceptAccession{
				{Accession: "ZM00001D012345", Source: "GRAMENE"},
				{Accession: "ZM00001EB012345", Source: "GRAMENE"},
			},
		},
		{ID: "it-raw-" + runTag, TypeID: typeID, PID: " raw-pid "},
	}
	for _, c := range concepts {
		require.NoError(t, l.SaveConcept(ctx, c))
	}
	t.Cleanup(func() {
		for _, c := range concepts {
			_, _ = d.ExecuteQuery(context.Background(), driver.DeleteConceptQuery, map[string]interface{}{"id": c.ID})
		}
	})

	got, err := l.GetConcept(ctx, concepts[0].ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, concepts[0].Names, got.Names)

	res, err := l.LabelConcept(ctx, concepts[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "ZM00001EB012345", res.Label)

	_, err = l.LabelConcept(ctx, "it-missing-"+runTag)
	assert.ErrorIs(t, err, core.ErrConceptNotFound)

	stats, err := l.Relabel(ctx, typeID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.Written, len(concepts))

	rec, err := d.ExecuteQuery(ctx, "MATCH (c:Concept {id: $id}) RETURN c.label AS label, c.label_stage AS stage, c.label_run AS run", map[string]interface{}{"id": concepts[2].ID})
	require.NoError(t, err)
	require.Len(t, rec.Records, 1)
	assert.Equal(t, "raw-pid", common.RecordString(rec.Records[0], "label"))
	assert.Equal(t, "pid", common.RecordString(rec.Records[0], "stage"))
	assert.Equal(t, stats.RunID, common.RecordString(rec.Records[0], "run"))
}
