// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package recognition

import (
	"math"
	"testing"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/prototypes"
)

// testPrototypes builds a store with orthogonal unit vectors for ids 1-3.
func testPrototypes(t *testing.T) *prototypes.Store {
	t.Helper()

	s, err := prototypes.Parse([]byte(`{
		"1": [1, 0, 0],
		"2": [0, 1, 0],
		"3": [0, 0, 1]
	}`))
	if err != nil {
		t.Fatalf("parse prototypes: %v", err)
	}
	return s
}

func TestBestMatch_SelfSimilarity(t *testing.T) {
	m := NewVisualMatcher(testPrototypes(t), 0.2)

	got := m.BestMatch([]float32{1, 0, 0}, nil)
	if !got.Matched || got.LandmarkID != 1 {
		t.Fatalf("BestMatch = %+v, want match on id 1", got)
	}
	if math.Abs(got.RawSimilarity-1.0) > 1e-6 {
		t.Errorf("RawSimilarity = %v, want 1.0", got.RawSimilarity)
	}
	if math.Abs(got.VisualScore-1.0) > 1e-6 {
		t.Errorf("VisualScore = %v, want 1.0", got.VisualScore)
	}
}

func TestBestMatch_ScopeRestriction(t *testing.T) {
	m := NewVisualMatcher(testPrototypes(t), 0.2)

	// Globally the query matches id 1 perfectly, but the scope excludes it.
	got := m.BestMatch([]float32{1, 0, 0}, []int64{2, 3})
	if got.Matched {
		t.Errorf("BestMatch = %+v, want rejection (best in-scope similarity is 0)", got)
	}
}

func TestBestMatch_ScopeWithUnknownIDs(t *testing.T) {
	m := NewVisualMatcher(testPrototypes(t), 0.2)

	// Ids without prototypes are skipped, not treated as candidates.
	got := m.BestMatch([]float32{0, 1, 0}, []int64{99, 2})
	if !got.Matched || got.LandmarkID != 2 {
		t.Errorf("BestMatch = %+v, want match on id 2", got)
	}
}

func TestBestMatch_ThresholdGate(t *testing.T) {
	m := NewVisualMatcher(testPrototypes(t), 0.2)

	// Best similarity is 0.1, below the floor.
	v := float32(0.1)
	rest := float32(math.Sqrt(1 - 0.01))
	got := m.BestMatch([]float32{v, rest, 0}, []int64{1})
	if got.Matched {
		t.Errorf("BestMatch = %+v, want rejection below similarity floor", got)
	}
	if got.VisualScore != 0 {
		t.Errorf("VisualScore = %v, want 0 for rejected match", got.VisualScore)
	}
	if math.Abs(got.RawSimilarity-0.1) > 1e-6 {
		t.Errorf("RawSimilarity = %v, want 0.1 kept for diagnostics", got.RawSimilarity)
	}
}

func TestBestMatch_EmptyStore(t *testing.T) {
	m := NewVisualMatcher(prototypes.Empty(), 0.2)

	if got := m.BestMatch([]float32{1, 0, 0}, nil); got.Matched || got.VisualScore != 0 {
		t.Errorf("BestMatch on empty store = %+v, want zero match", got)
	}
}

func TestBestMatch_DimensionMismatch(t *testing.T) {
	m := NewVisualMatcher(testPrototypes(t), 0.2)

	// A wrong-length embedding must not be scored against 3-dimensional
	// prototypes; a truncated dot product would be meaningless.
	tests := []struct {
		name      string
		embedding []float32
	}{
		{"shorter than prototypes", []float32{1, 0}},
		{"longer than prototypes", []float32{1, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.BestMatch(tt.embedding, nil)
			if got.Matched || got.VisualScore != 0 || got.RawSimilarity != 0 {
				t.Errorf("BestMatch = %+v, want zero match on dimension mismatch", got)
			}
		})
	}
}

func TestBestMatch_NilEmbedding(t *testing.T) {
	m := NewVisualMatcher(testPrototypes(t), 0.2)

	if got := m.BestMatch(nil, nil); got.Matched {
		t.Errorf("BestMatch(nil) = %+v, want zero match", got)
	}
}

func TestCosineSimilarity_Clamp(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"adversarial overflow clamped high", []float32{5, 5}, []float32{5, 5}, 1},
		{"adversarial overflow clamped low", []float32{5, 5}, []float32{-5, -5}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestToVisualScore(t *testing.T) {
	tests := []struct {
		raw, want float64
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{0.3, 0.65},
	}

	for _, tt := range tests {
		if got := toVisualScore(tt.raw); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("toVisualScore(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
