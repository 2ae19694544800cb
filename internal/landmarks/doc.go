// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package landmarks provides the landmark dataset provider.
//
// The dataset is a CSV asset loaded once at startup into an immutable
// in-memory store. Lookups by ID are O(1); proximity queries are served by a
// spatial hash grid so a nearby query only inspects cells overlapping the
// search radius instead of scanning the full dataset.
//
// Malformed CSV rows are skipped and counted, never fatal - a partially
// loaded dataset is preferable to a service that cannot start.
package landmarks
