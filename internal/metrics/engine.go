package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records bidding engine activity. A nil *EngineMetrics is a
// valid no-op recorder.
type EngineMetrics struct {
	bidsAccepted      prometheus.Counter
	bidsRejected      *prometheus.CounterVec
	extensions        prometheus.Counter
	liveAuctions      prometheus.Gauge
	broadcastOverflow prometheus.Counter
	publishFailures   prometheus.Counter
	persistFailures   prometheus.Counter
	notifications     prometheus.Counter
}

// NewEngineMetrics registers the engine collectors on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return nil
	}
	m := &EngineMetrics{
		bidsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bids_accepted_total",
			Help: "Bids accepted by auction state machines.",
		}),
		bidsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bids_rejected_total",
			Help: "Bids rejected, by reason.",
		}, []string{"reason"}),
		extensions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_deadline_extensions_total",
			Help: "Anti-snipe deadline extensions.",
		}),
		liveAuctions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "auctions_live",
			Help: "Auction state machines currently held by the registry.",
		}),
		broadcastOverflow: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_overflow_total",
			Help: "Subscriber queues collapsed into a snapshot because they fell behind.",
		}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "event_publish_failures_total",
			Help: "Lifecycle events that could not be relayed to the realtime transport.",
		}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auction_persist_failures_total",
			Help: "Accepted transitions that could not be written to storage.",
		}),
		notifications: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbid_notifications_total",
			Help: "Outbid notifications sent.",
		}),
	}
	reg.MustRegister(m.bidsAccepted, m.bidsRejected, m.extensions, m.liveAuctions,
		m.broadcastOverflow, m.publishFailures, m.persistFailures, m.notifications)
	return m
}

func (m *EngineMetrics) IncBidAccepted() {
	if m == nil {
		return
	}
	m.bidsAccepted.Inc()
}

func (m *EngineMetrics) IncBidRejected(reason string) {
	if m == nil {
		return
	}
	m.bidsRejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *EngineMetrics) IncExtension() {
	if m == nil {
		return
	}
	m.extensions.Inc()
}

func (m *EngineMetrics) SetLiveAuctions(n int) {
	if m == nil {
		return
	}
	m.liveAuctions.Set(float64(n))
}

func (m *EngineMetrics) IncBroadcastOverflow() {
	if m == nil {
		return
	}
	m.broadcastOverflow.Inc()
}

func (m *EngineMetrics) IncPublishFailure() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

func (m *EngineMetrics) IncPersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *EngineMetrics) IncNotification() {
	if m == nil {
		return
	}
	m.notifications.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
