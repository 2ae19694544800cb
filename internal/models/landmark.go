// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package models

// Landmark is a single entry from the landmark dataset.
// Records are loaded once at startup and are read-only afterwards.
type Landmark struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Info        string  `json:"info,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Category    string  `json:"category,omitempty"`
	SubCategory string  `json:"sub_category,omitempty"`
	Country     string  `json:"country,omitempty"`
}

// Coordinates is a WGS84 position.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
