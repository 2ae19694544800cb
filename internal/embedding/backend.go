// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package embedding

import (
	"context"
	"errors"
)

// ErrBackendDisabled is returned by a disabled backend's Embed.
var ErrBackendDisabled = errors.New("embedding backend disabled")

// Backend produces a fixed-length feature vector from encoded image bytes.
type Backend interface {
	// Embed returns the L2-normalized embedding of the image, or an error
	// if the image cannot be decoded or the model cannot run.
	Embed(ctx context.Context, image []byte) ([]float32, error)

	// Dimensions returns the embedding length, or 0 if unknown.
	Dimensions() int

	// Close releases backend resources.
	Close() error
}

// Disabled is a Backend whose Embed always fails. It stands in when the
// model asset is absent so the pipeline can degrade instead of crash.
type Disabled struct{}

// Embed implements Backend.
func (Disabled) Embed(context.Context, []byte) ([]float32, error) {
	return nil, ErrBackendDisabled
}

// Dimensions implements Backend.
func (Disabled) Dimensions() int { return 0 }

// Close implements Backend.
func (Disabled) Close() error { return nil }
