// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clicknet_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// NotificationsEmitted counts notifications written, by type.
	NotificationsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clicknet_notifications_emitted_total",
		Help: "Total number of notifications emitted by type",
	}, []string{"type"})

	// EmailsSent counts transactional emails by template and outcome.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clicknet_emails_sent_total",
		Help: "Total number of transactional emails by template and outcome",
	}, []string{"template", "outcome"})

	// StorageOperations counts object storage operations by kind and outcome.
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clicknet_storage_operations_total",
		Help: "Total number of object storage operations by kind and outcome",
	}, []string{"operation", "outcome"})
)
