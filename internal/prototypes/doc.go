// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package prototypes loads the precomputed landmark embedding table.
//
// The asset is JSON in one of two shapes, resolved once at load time:
//
//	{"12": [0.1, 0.2, ...], "47": [...]}                     // flat map
//	[{"landmark_id": 12, "embedding": [0.1, ...]}, ...]      // record list
//
// For the record list, the first entry per landmark ID wins. Vectors with a
// length differing from the first accepted vector are skipped defensively.
// All stored vectors are L2-normalized so cosine similarity against them
// reduces to a dot product.
package prototypes
