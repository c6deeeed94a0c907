/*
Package monitoring provides Prometheus metrics for the desktop backend.

# Features

- HTTP request metrics (count, latency)
- Panel operations and open panels by kind
- Panel notifications by type
- Layout save/restore counters
- WebSocket connection metrics
- Uptime

Each Metrics value owns its registry, so several instances can coexist
(tests build one per manager).

# Usage

	metrics := monitoring.NewMetrics()
	metrics.RegisterRuntimeCollectors()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
