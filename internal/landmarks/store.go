// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package landmarks

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
)

// Expected CSV header columns, by position.
const (
	colID = iota
	colName
	colInfo
	colLatitude
	colLongitude
	colCategory
	colSubCategory
	colCountry
	columnCount
)

// gridCellSizeKm sizes the spatial index cells. Nearby queries run at
// 5-40 km radii, so 10 km cells keep the checked bounding box small.
const gridCellSizeKm = 10.0

// Store is an immutable in-memory landmark dataset.
// It is safe for concurrent use; all mutation happens during load.
type Store struct {
	byID    map[int64]*models.Landmark
	grid    *spatialGrid
	skipped int
	logger  zerolog.Logger
}

// Open loads the landmark dataset from a CSV file.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(path string, logger zerolog.Logger) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open landmark dataset: %w", err)
	}
	defer f.Close()

	return Load(f, logger)
}

// Load reads the landmark dataset from r. The first row must be a header.
// Rows with missing columns, unparsable numbers, or duplicate IDs are
// skipped and counted; only a broken header or read error is fatal.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Load(r io.Reader, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().Str("component", "landmarks").Logger()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length validated per record below

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read landmark header: %w", err)
	}

	s := &Store{
		byID:   make(map[int64]*models.Landmark),
		logger: logger,
	}

	records := make([]*models.Landmark, 0, 256)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read landmark row: %w", err)
		}

		rec, ok := parseRow(row)
		if !ok {
			s.skipped++
			continue
		}
		if _, dup := s.byID[rec.ID]; dup {
			s.skipped++
			continue
		}

		s.byID[rec.ID] = rec
		records = append(records, rec)
	}

	s.grid = newSpatialGrid(records, gridCellSizeKm)

	logger.Info().
		Int("landmarks", len(records)).
		Int("skipped_rows", s.skipped).
		Msg("landmark dataset loaded")

	return s, nil
}

// parseRow converts one CSV row into a landmark record.
func parseRow(row []string) (*models.Landmark, bool) {
	if len(row) < columnCount {
		return nil, false
	}

	id, err := strconv.ParseInt(strings.TrimSpace(row[colID]), 10, 64)
	if err != nil {
		return nil, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row[colLatitude]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, false
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(row[colLongitude]), 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, false
	}

	name := strings.TrimSpace(row[colName])
	if name == "" {
		return nil, false
	}

	return &models.Landmark{
		ID:          id,
		Name:        name,
		Info:        strings.TrimSpace(row[colInfo]),
		Latitude:    lat,
		Longitude:   lon,
		Category:    strings.TrimSpace(row[colCategory]),
		SubCategory: strings.TrimSpace(row[colSubCategory]),
		Country:     strings.TrimSpace(row[colCountry]),
	}, true
}

// GetByID returns the landmark with the given ID, or nil if unknown.
func (s *Store) GetByID(_ context.Context, id int64) (*models.Landmark, error) {
	rec, ok := s.byID[id]
	if !ok {
		return nil, nil
	}

	recCopy := *rec
	return &recCopy, nil
}

// GetNearby returns all landmarks within radiusKm of the given point,
// in no particular order.
func (s *Store) GetNearby(_ context.Context, lat, lon, radiusKm float64) ([]*models.Landmark, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("radius must be positive, got %v", radiusKm)
	}
	return s.grid.queryNearby(lat, lon, radiusKm), nil
}

// Count returns the number of loaded landmarks.
func (s *Store) Count() int {
	return len(s.byID)
}

// SkippedRows returns how many dataset rows were rejected during load.
func (s *Store) SkippedRows() int {
	return s.skipped
}
