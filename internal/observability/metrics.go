// Package observability exposes the application's Prometheus metric vectors.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mural_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MediaFileOps counts media file operations on the upload directory.
	MediaFileOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mural_media_file_ops_total",
		Help: "Total media file operations by kind and outcome",
	}, []string{"op", "outcome"})

	// NotificationsCreated counts stored notifications by trigger.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mural_notifications_created_total",
		Help: "Total notifications created by trigger kind",
	}, []string{"trigger"})
)
