package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for decoding and scanning.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	callsDecodedTotal  *prometheus.CounterVec
	decodeFailureTotal *prometheus.CounterVec
	chunksTotal        *prometheus.CounterVec
	blocksScannedTotal prometheus.Counter
	rpcRetriesTotal    *prometheus.CounterVec
}

// NewMetrics registers all collectors. If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		callsDecodedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearsign_calls_decoded_total",
				Help: "Total number of contract calls decoded by method",
			},
			[]string{"method"},
		),
		decodeFailureTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearsign_decode_failures_total",
				Help: "Total number of contract calls that failed to decode by reason",
			},
			[]string{"reason"},
		),
		chunksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearsign_chunks_total",
				Help: "Total number of call-data words provided to the decoder by outcome",
			},
			[]string{"outcome"},
		),
		blocksScannedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "clearsign_blocks_scanned_total",
				Help: "Total number of blocks scanned for contract calls",
			},
		),
		rpcRetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clearsign_rpc_retries_total",
				Help: "Total number of retried RPC calls by method",
			},
			[]string{"method"},
		),
	}
}

func (m *Metrics) RecordDecoded(method string) {
	if m == nil {
		return
	}
	m.callsDecodedTotal.WithLabelValues(method).Inc()
}

func (m *Metrics) RecordFailure(reason string) {
	if m == nil {
		return
	}
	m.decodeFailureTotal.WithLabelValues(reason).Inc()
}

func (m *Metrics) RecordChunk(outcome string) {
	if m == nil {
		return
	}
	m.chunksTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordBlocks(count int) {
	if m == nil {
		return
	}
	m.blocksScannedTotal.Add(float64(count))
}

func (m *Metrics) RecordRPCRetry(method string) {
	if m == nil {
		return
	}
	m.rpcRetriesTotal.WithLabelValues(method).Inc()
}
