// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

/*
Package recognition implements the hybrid landmark recognition pipeline.

Recognition fuses two independent signals per attempt:

  - GPS proximity: the nearest cached landmark by planar distance, scored
    through a sigmoid of distance over the user's detection radius.
  - Visual similarity: the best cosine match between the query image's
    embedding and the prototype table, scoped to the nearby cache when it
    has entries and global otherwise.

The fused confidence is a weighted sum of both scores plus a flat bonus
when both signals name the same landmark. The bonus is additive, so
confidence can exceed 1.0. A multi-stage threshold policy then maps the
bundle to an outcome, and successful matches are enriched with descriptive
text through a fallback chain that always yields a non-empty description.

Every external collaborator failure is absorbed at the point of use and
degrades to a neutral value. The Engine's Recognize method never panics
and never returns an error; unexpected failures surface as OutcomeError
with zeroed scores.
*/
package recognition
