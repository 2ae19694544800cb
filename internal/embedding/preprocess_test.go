// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package embedding

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

// encodeTestImage produces a PNG of a solid color.
func encodeTestImage(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestPreprocess_Shape(t *testing.T) {
	data := encodeTestImage(t, 64, 48, color.RGBA{R: 128, G: 64, B: 200, A: 255})

	tensor, err := preprocess(data, 32)
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}
	if len(tensor) != 3*32*32 {
		t.Errorf("tensor length = %d, want %d", len(tensor), 3*32*32)
	}
}

func TestPreprocess_Normalization(t *testing.T) {
	// A pure white image maps every channel to (1 - mean) / std.
	data := encodeTestImage(t, 8, 8, color.White)

	tensor, err := preprocess(data, 4)
	if err != nil {
		t.Fatalf("preprocess failed: %v", err)
	}

	plane := 4 * 4
	for ch := 0; ch < 3; ch++ {
		want := (1.0 - channelMean[ch]) / channelStd[ch]
		got := tensor[ch*plane]
		if math.Abs(float64(got-want)) > 1e-3 {
			t.Errorf("channel %d = %v, want %v", ch, got, want)
		}
	}
}

func TestPreprocess_InvalidImage(t *testing.T) {
	if _, err := preprocess([]byte("not an image"), 32); err == nil {
		t.Error("expected error for undecodable bytes")
	}
}

func TestDisabledBackend(t *testing.T) {
	var b Backend = Disabled{}

	if _, err := b.Embed(context.Background(), []byte{1, 2, 3}); !errors.Is(err, ErrBackendDisabled) {
		t.Errorf("Embed error = %v, want ErrBackendDisabled", err)
	}
	if b.Dimensions() != 0 {
		t.Errorf("Dimensions() = %d, want 0", b.Dimensions())
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name string
		in   []float32
		want []float32
	}{
		{"already normalized", []float32{1, 0}, []float32{1, 0}},
		{"scales down", []float32{3, 4}, []float32{0.6, 0.8}},
		{"zero vector unchanged", []float32{0, 0}, []float32{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeVector(tt.in)
			for i := range tt.want {
				if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
					t.Errorf("normalizeVector(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}
