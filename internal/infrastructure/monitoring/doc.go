/*
Package monitoring provides Prometheus metrics for the bot.

# Overview

Metrics are registered on an injected prometheus.Registerer so tests can use
a private registry and the server can expose the default one.

# Features

- HTTP request metrics (count, latency) per route template
- Remote action outcomes labelled by failure kind (transport, domain)
- Feed submissions per feed call
- Upstream call counts, latency and circuit breaker state
- Live browser sessions and auto-run stream connections

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
