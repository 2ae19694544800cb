// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8460/metrics

# Available Metrics

Recognition Metrics:
  - recognition_attempts_total: Recognition attempts (counter)
    Labels: outcome (success, no_match, low_confidence, not_found, error)
  - recognition_duration_seconds: End-to-end latency (histogram)
  - recognition_stage_duration_seconds: Per-stage latency (histogram)
    Labels: stage (gps, visual, enrichment)
  - recognition_confidence: Fused confidence distribution (histogram)
    Buckets extend past 1.0 because the agreement bonus is additive
  - recognition_agreement_bonus_total: Attempts where both signals agreed (counter)

Cache Metrics:
  - nearby_cache_hits_total: Fresh cache entries reused (counter)
  - nearby_cache_refreshes_total: Provider-backed refreshes (counter)
  - nearby_cache_radius_expansions_total: Refreshes that used the doubled radius (counter)
  - nearby_cache_entries: Landmarks cached after the last refresh (gauge)

Collaborator Metrics:
  - provider_failures_total: Absorbed external failures (counter)
    Labels: provider (location, landmark, embedding, enrichment, prefs)
  - enrichment_fallbacks_total: Descriptions served from fallback text (counter)
    Labels: source (raw_info, template)

API Metrics:
  - api_requests_total: HTTP requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: HTTP latency (histogram)

# Usage Example

	start := time.Now()
	result := engine.Recognize(ctx, req)
	metrics.RecordRecognition(result.Outcome.String(), result.Confidence,
		result.AgreementBonus, time.Since(start))

# Thread Safety

All metric recording functions are safe for concurrent use; the Prometheus
client library handles synchronization internally.

# Cardinality Management

Labels are restricted to small fixed sets (outcomes, stages, provider names).
Landmark ids and user-specific values are never used as labels.
*/
package metrics
