package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordResolution(t *testing.T) {
	before := testutil.ToFloat64(labelsResolvedTotal.WithLabelValues("accession", "gene"))
	RecordResolution("accession", true)
	RecordResolution("accession", true)
	RecordResolution("accession", false)
	assert.Equal(t, before+2, testutil.ToFloat64(labelsResolvedTotal.WithLabelValues("accession", "gene")))
}

func TestRecordWrittenAndErrors(t *testing.T) {
	before := testutil.ToFloat64(relabelWrittenTotal)
	RecordWritten(3)
	assert.Equal(t, before+3, testutil.ToFloat64(relabelWrittenTotal))

	errBefore := testutil.ToFloat64(labelErrorsTotal.WithLabelValues("relabel"))
	RecordError("relabel")
	assert.Equal(t, errBefore+1, testutil.ToFloat64(labelErrorsTotal.WithLabelValues("relabel")))
}

func TestRecordRelabel(t *testing.T) {
	RecordRelabel("", 2*time.Second)
	RecordRelabel("Gene", time.Second)
	// one series per type
	assert.GreaterOrEqual(t, testutil.CollectAndCount(relabelDurationSeconds), 2)
}
