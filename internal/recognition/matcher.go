// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package recognition

import (
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/prototypes"
)

// VisualMatch is the outcome of one nearest-prototype search.
type VisualMatch struct {
	LandmarkID int64
	Matched    bool

	// RawSimilarity is the clamped cosine similarity of the best candidate,
	// kept for diagnostics even when the match was rejected.
	RawSimilarity float64

	// VisualScore is RawSimilarity mapped to [0,1], or 0 for a rejected
	// match.
	VisualScore float64
}

// VisualMatcher finds the prototype closest to a query embedding.
type VisualMatcher struct {
	store  *prototypes.Store
	minSim float64
}

// NewVisualMatcher creates a matcher over the prototype table.
func NewVisualMatcher(store *prototypes.Store, minCosineSimilarity float64) *VisualMatcher {
	return &VisualMatcher{store: store, minSim: minCosineSimilarity}
}

// BestMatch scans for the prototype with maximum cosine similarity to the
// embedding. A non-empty scope restricts candidates to those ids; an empty
// scope searches the whole table. Best matches weaker than the similarity
// floor are rejected. An empty table, a nil embedding, or an embedding whose
// length differs from the table's dimensionality yields no match.
func (m *VisualMatcher) BestMatch(embedding []float32, scope []int64) VisualMatch {
	if len(embedding) == 0 || m.store.Count() == 0 || len(embedding) != m.store.Dimensions() {
		return VisualMatch{}
	}

	var (
		bestID  int64
		bestSim = -2.0
		found   bool
	)

	if len(scope) > 0 {
		for _, id := range scope {
			vec, ok := m.store.Vector(id)
			if !ok {
				continue
			}
			if sim := cosineSimilarity(embedding, vec); !found || sim > bestSim {
				bestID, bestSim, found = id, sim, true
			}
		}
	} else {
		for id, vec := range m.store.All() {
			if sim := cosineSimilarity(embedding, vec); !found || sim > bestSim {
				bestID, bestSim, found = id, sim, true
			}
		}
	}

	if !found {
		return VisualMatch{}
	}
	if bestSim < m.minSim {
		// Too weak to trust, but keep the raw value for diagnostics.
		return VisualMatch{RawSimilarity: bestSim}
	}

	return VisualMatch{
		LandmarkID:    bestID,
		Matched:       true,
		RawSimilarity: bestSim,
		VisualScore:   toVisualScore(bestSim),
	}
}

// cosineSimilarity computes the dot product of two vectors. Stored
// prototypes and query embeddings are both unit-normalized, so the dot
// product is the cosine similarity. The result is clamped to [-1,1] to
// absorb floating-point drift and adversarial non-normalized inputs.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}

	if dot > 1 {
		return 1
	}
	if dot < -1 {
		return -1
	}
	return dot
}

// toVisualScore maps a cosine similarity in [-1,1] onto [0,1].
func toVisualScore(rawSimilarity float64) float64 {
	return (rawSimilarity + 1) / 2
}
