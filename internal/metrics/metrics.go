// Package metrics 定義服務對外暴露的 Prometheus 指標。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	MessagesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_messages_created_total",
			Help: "Total number of episode messages created by message type.",
		},
		[]string{"type"},
	)

	OrderConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_message_order_conflicts_total",
			Help: "Total number of rejected message orders by stage (precheck or constraint).",
		},
		[]string{"stage"},
	)

	NotificationsPushedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_notifications_pushed_total",
			Help: "Total number of notifications pushed over websocket by result.",
		},
		[]string{"result"},
	)

	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "story_websocket_connections",
		Help: "Number of open notification websocket connections.",
	})
)
