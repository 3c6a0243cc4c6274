package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordDecoded("wrap")
	m.RecordDecoded("wrap")
	m.RecordFailure("unexpected_field")
	m.RecordChunk("deferred")
	m.RecordBlocks(5)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.callsDecodedTotal.WithLabelValues("wrap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decodeFailureTotal.WithLabelValues("unexpected_field")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chunksTotal.WithLabelValues("deferred")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.blocksScannedTotal))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordDecoded("wrap")
	m.RecordFailure("x")
	m.RecordChunk("consumed")
	m.RecordBlocks(1)
	m.RecordRPCRetry("eth_getBlockByNumber")
}
