// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package embedding

import (
	"bytes"
	"fmt"
	"image"

	// Register decoders for the formats the capture flow produces.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// ImageNet channel statistics used by the embedding model's training recipe.
var (
	channelMean = [3]float32{0.485, 0.456, 0.406}
	channelStd  = [3]float32{0.229, 0.224, 0.225}
)

// preprocess decodes the image, scales it to size x size, and converts it to
// a normalized CHW float32 tensor as expected by the ONNX model.
func preprocess(data []byte, size int) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	tensor := make([]float32, 3*size*size)
	plane := size * size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := scaled.At(x, y).RGBA()
			idx := y*size + x
			tensor[idx] = (float32(r)/65535.0 - channelMean[0]) / channelStd[0]
			tensor[plane+idx] = (float32(g)/65535.0 - channelMean[1]) / channelStd[1]
			tensor[2*plane+idx] = (float32(b)/65535.0 - channelMean[2]) / channelStd[2]
		}
	}

	return tensor, nil
}
