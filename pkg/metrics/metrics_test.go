package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEngagementCounters(t *testing.T) {
	before := testutil.ToFloat64(EngagementMutations.WithLabelValues("view", "applied"))
	EngagementMutations.WithLabelValues("view", "applied").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(EngagementMutations.WithLabelValues("view", "applied")))

	before = testutil.ToFloat64(BroadcastDropped)
	BroadcastDropped.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(BroadcastDropped))
}
