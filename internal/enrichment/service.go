// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package enrichment

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no enrichment backend is configured.
var ErrUnavailable = errors.New("enrichment service unavailable")

// Service produces descriptive text for landmarks. Implementations may fail
// or be unavailable; callers must have a fallback.
type Service interface {
	// Format rewrites existing raw info text into presentable prose.
	Format(ctx context.Context, name, rawText string) (string, error)

	// Generate writes a description from the landmark name alone.
	Generate(ctx context.Context, name string) (string, error)
}

// Disabled is a Service that always fails. It stands in when no enrichment
// endpoint is configured so the pipeline's fallback chain takes over.
type Disabled struct{}

// Format implements Service.
func (Disabled) Format(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}

// Generate implements Service.
func (Disabled) Generate(context.Context, string) (string, error) {
	return "", ErrUnavailable
}
