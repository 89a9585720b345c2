package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCaptureFailuresLabeledByKind(t *testing.T) {
	before := testutil.ToFloat64(CaptureFailures.WithLabelValues("region_not_found"))
	CaptureFailures.WithLabelValues("region_not_found").Inc()
	after := testutil.ToFloat64(CaptureFailures.WithLabelValues("region_not_found"))
	assert.Equal(t, before+1, after)
}

func TestCountersRegisterAndIncrement(t *testing.T) {
	before := testutil.ToFloat64(SnapshotsCaptured)
	SnapshotsCaptured.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SnapshotsCaptured))

	before = testutil.ToFloat64(CandidatesDiscovered)
	CandidatesDiscovered.Add(3)
	assert.Equal(t, before+3, testutil.ToFloat64(CandidatesDiscovered))
}
