// Package metrics holds the process-wide Prometheus collectors, exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InboundMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "textline",
		Name:      "inbound_messages_total",
		Help:      "Inbound carrier webhook calls by outcome (stored, failed).",
	}, []string{"outcome"})

	Replies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "textline",
		Name:      "replies_total",
		Help:      "Reply attempts by outcome (sent, delivery_failed, storage_failed).",
	}, []string{"outcome"})

	Broadcasts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "textline",
		Name:      "broadcasts_total",
		Help:      "Live-channel broadcasts by event type.",
	}, []string{"event"})

	DroppedConnections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "textline",
		Name:      "live_connections_dropped_total",
		Help:      "Live connections dropped because their send buffer was full.",
	})

	LiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "textline",
		Name:      "live_connections",
		Help:      "Currently registered live dashboard connections.",
	})
)
