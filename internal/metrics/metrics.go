// Package metrics defines the process-wide prometheus collectors.
// Exposed on the stream server router at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReplayedSlots = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sedimentology_replayed_slots_total",
		Help: "Slots applied by the replay engine",
	})

	SavedCheckpoints = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sedimentology_saved_checkpoints_total",
		Help: "Daily checkpoints persisted",
	})

	ArchivedDays = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sedimentology_archived_days_total",
		Help: "Days fully archived, per profile",
	}, []string{"profile"})

	DistributedSlots = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sedimentology_distributed_slots_total",
		Help: "Slots mirrored to the destination database",
	})

	DistributedBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sedimentology_distributed_bytes_total",
		Help: "Mirrored transaction bytes, raw vs compressed",
	}, []string{"kind"}) // kind: raw | compressed

	StreamRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sedimentology_stream_requests_total",
		Help: "Accepted /stream requests",
	})

	StreamEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sedimentology_stream_events_total",
		Help: "SSE events delivered, data vs empty heartbeats",
	}, []string{"kind"}) // kind: data | empty

	StreamBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sedimentology_stream_bytes_total",
		Help: "SSE payload bytes shipped to clients",
	})
)

func init() {
	prometheus.MustRegister(
		ReplayedSlots,
		SavedCheckpoints,
		ArchivedDays,
		DistributedSlots,
		DistributedBytes,
		StreamRequests,
		StreamEvents,
		StreamBytes,
	)
}
