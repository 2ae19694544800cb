// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package models defines the shared data structures of the recognition
// service: landmark records and coordinates. Packages exchange these types
// instead of importing each other.
package models
