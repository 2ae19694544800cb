// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package prototypes

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Store is an immutable landmark ID to prototype vector table.
// It is safe for concurrent use after load.
type Store struct {
	vectors map[int64][]float32
	dim     int
	skipped int
}

// protoRecord is one entry of the record-list asset shape.
type protoRecord struct {
	LandmarkID int64     `json:"landmark_id"`
	Embedding  []float32 `json:"embedding"`
}

// OpenOrEmpty loads the prototype asset from path, degrading to an empty
// store on any failure. Visual matching against an empty store scores
// nothing; recognition then runs on the GPS signal alone.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenOrEmpty(path string, logger zerolog.Logger) *Store {
	logger = logger.With().Str("component", "prototypes").Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("prototype asset unavailable, visual matching disabled")
		return Empty()
	}

	s, err := Parse(data)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("prototype asset unreadable, visual matching disabled")
		return Empty()
	}

	logger.Info().
		Int("prototypes", s.Count()).
		Int("dimensions", s.Dimensions()).
		Int("skipped", s.skipped).
		Msg("prototype table loaded")

	return s
}

// Empty returns a store with no prototypes.
func Empty() *Store {
	return &Store{vectors: make(map[int64][]float32)}
}

// Parse decodes the asset bytes, trying the flat-map shape first and the
// record-list shape second.
func Parse(data []byte) (*Store, error) {
	var flat map[string][]float32
	if err := json.Unmarshal(data, &flat); err == nil {
		return fromFlatMap(flat), nil
	}

	var records []protoRecord
	if err := json.Unmarshal(data, &records); err == nil {
		return fromRecords(records), nil
	}

	return nil, fmt.Errorf("prototype asset matches neither map nor record-list shape")
}

func fromFlatMap(flat map[string][]float32) *Store {
	s := Empty()
	for key, vec := range flat {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			s.skipped++
			continue
		}
		s.add(id, vec)
	}
	return s
}

func fromRecords(records []protoRecord) *Store {
	s := Empty()
	for _, rec := range records {
		// First entry per ID wins.
		if _, ok := s.vectors[rec.LandmarkID]; ok {
			s.skipped++
			continue
		}
		s.add(rec.LandmarkID, rec.Embedding)
	}
	return s
}

// add stores a vector, enforcing the uniform-length invariant. The first
// accepted vector fixes the table's dimensionality.
func (s *Store) add(id int64, vec []float32) {
	if len(vec) == 0 {
		s.skipped++
		return
	}
	if s.dim == 0 {
		s.dim = len(vec)
	}
	if len(vec) != s.dim {
		s.skipped++
		return
	}

	s.vectors[id] = normalize(vec)
}

// normalize returns the L2-normalized copy of vec. Zero vectors are
// returned as-is since they cannot be normalized.
func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}

	out := make([]float32, len(vec))
	norm := math.Sqrt(sum)
	if norm == 0 {
		copy(out, vec)
		return out
	}

	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

// Vector returns the prototype for a landmark ID.
func (s *Store) Vector(id int64) ([]float32, bool) {
	vec, ok := s.vectors[id]
	return vec, ok
}

// All returns the full prototype table. Callers must not mutate it.
func (s *Store) All() map[int64][]float32 {
	return s.vectors
}

// Count returns the number of loaded prototypes.
func (s *Store) Count() int {
	return len(s.vectors)
}

// Dimensions returns the vector length, or 0 for an empty store.
func (s *Store) Dimensions() int {
	return s.dim
}
