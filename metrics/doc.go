// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus metrics for the judging service.

	m := metrics.NewManager()
	mux.Handle("GET /metrics", m.Handler())

Collected series (namespace "judgeboard"):

  - http_requests_total{route,method,status_code}
  - http_request_duration_seconds{route,method}
  - scores_submitted_total{section}
  - score_validation_failures_total{kind}
  - scores_deleted_total
  - exports_total{format}
  - store_errors_total{operation}
  - ranked_participants{section}
*/
package metrics
