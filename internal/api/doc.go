// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

/*
Package api provides the HTTP surface of the recognition service using the
Chi router.

Endpoints:

	POST /api/v1/recognize            run one recognition attempt on an uploaded image
	GET  /api/v1/landmarks/{id}       fetch a landmark record
	GET  /api/v1/landmarks/nearby     list landmarks around a position
	GET  /api/v1/preferences/radius   read the detection radius
	PUT  /api/v1/preferences/radius   update the detection radius
	GET  /api/v1/health               service health and asset counts
	GET  /metrics                     Prometheus metrics

All endpoints return the APIResponse envelope. Requests carry an
X-Request-ID header that is generated when absent and threaded through
logs via the request context.
*/
package api
