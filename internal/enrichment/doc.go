// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package enrichment calls the generative text service that produces
// landmark descriptions.
//
// Two operations exist: Format polishes existing raw info text, Generate
// writes a fresh description from the landmark name alone. The service is
// remote and allowed to be unavailable; the HTTP client wraps calls in a
// circuit breaker and a rate limiter, and every failure surfaces as an
// error the recognition pipeline absorbs with its local fallback text.
package enrichment
