// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package prototypes

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestParse_FlatMap(t *testing.T) {
	data := []byte(`{"1": [1.0, 0.0, 0.0], "2": [0.0, 1.0, 0.0]}`)

	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
	if s.Dimensions() != 3 {
		t.Errorf("Dimensions() = %d, want 3", s.Dimensions())
	}
	if _, ok := s.Vector(1); !ok {
		t.Error("expected vector for ID 1")
	}
}

func TestParse_RecordList(t *testing.T) {
	data := []byte(`[
		{"landmark_id": 10, "embedding": [1.0, 0.0]},
		{"landmark_id": 20, "embedding": [0.0, 1.0]},
		{"landmark_id": 10, "embedding": [0.5, 0.5]}
	]`)

	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}

	// First entry per ID wins: ID 10 must keep [1, 0].
	vec, ok := s.Vector(10)
	if !ok {
		t.Fatal("expected vector for ID 10")
	}
	if vec[0] != 1.0 || vec[1] != 0.0 {
		t.Errorf("duplicate entry overwrote the first: %v", vec)
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse([]byte(`"just a string"`)); err == nil {
		t.Error("expected error for non-table JSON")
	}
	if _, err := Parse([]byte(`{{{`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParse_SkipsMismatchedLengths(t *testing.T) {
	data := []byte(`[
		{"landmark_id": 1, "embedding": [1.0, 0.0, 0.0]},
		{"landmark_id": 2, "embedding": [1.0, 0.0]},
		{"landmark_id": 3, "embedding": [0.0, 1.0, 0.0]},
		{"landmark_id": 4, "embedding": []}
	]`)

	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
	if _, ok := s.Vector(2); ok {
		t.Error("mismatched-length vector should be skipped")
	}
	if _, ok := s.Vector(4); ok {
		t.Error("empty vector should be skipped")
	}
}

func TestParse_NormalizesVectors(t *testing.T) {
	data := []byte(`{"1": [3.0, 4.0]}`)

	s, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	vec, ok := s.Vector(1)
	if !ok {
		t.Fatal("expected vector for ID 1")
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1.0) > 1e-6 {
		t.Errorf("stored vector has squared norm %v, want 1.0", norm)
	}
	if math.Abs(float64(vec[0])-0.6) > 1e-6 || math.Abs(float64(vec[1])-0.8) > 1e-6 {
		t.Errorf("unexpected normalized vector: %v", vec)
	}
}

func TestOpenOrEmpty_MissingFile(t *testing.T) {
	s := OpenOrEmpty(filepath.Join(t.TempDir(), "nope.json"), zerolog.Nop())

	if s == nil {
		t.Fatal("OpenOrEmpty must never return nil")
	}
	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
}

func TestOpenOrEmpty_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prototypes.json")
	if err := os.WriteFile(path, []byte(`{"7": [0.0, 1.0]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := OpenOrEmpty(path, zerolog.Nop())
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
}
