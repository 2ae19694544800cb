// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package embedding

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/rs/zerolog"
	ort "github.com/yalue/onnxruntime_go"
)

// ONNXConfig configures the ONNX Runtime backend.
type ONNXConfig struct {
	// LibraryPath points to the onnxruntime shared library. Empty uses the
	// platform default search path.
	LibraryPath string

	// ModelPath points to the embedding model asset.
	ModelPath string

	// InputName and OutputName are the model's tensor names.
	InputName  string
	OutputName string

	// InputSize is the square input resolution (e.g. 224).
	InputSize int

	// OutputDim is the embedding length the model produces.
	OutputDim int
}

// ortEnvOnce guards process-wide ONNX Runtime environment initialization;
// the runtime only tolerates one environment per process.
var ortEnvOnce sync.Once

// ONNXBackend runs an image embedding model via ONNX Runtime.
// Run calls are serialized; the session binds one input tensor at a time.
type ONNXBackend struct {
	session *ort.DynamicAdvancedSession
	cfg     ONNXConfig
	mu      sync.Mutex
	logger  zerolog.Logger
}

// NewONNXBackend loads the model and prepares an inference session.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewONNXBackend(cfg ONNXConfig, logger zerolog.Logger) (*ONNXBackend, error) {
	if cfg.InputSize <= 0 {
		cfg.InputSize = 224
	}
	if cfg.InputName == "" {
		cfg.InputName = "input"
	}
	if cfg.OutputName == "" {
		cfg.OutputName = "embedding"
	}

	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("embedding model asset: %w", err)
	}

	var initErr error
	ortEnvOnce.Do(func() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", initErr)
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	logger.Info().
		Str("component", "embedding").
		Str("model", cfg.ModelPath).
		Int("input_size", cfg.InputSize).
		Int("dimensions", cfg.OutputDim).
		Msg("embedding backend ready")

	return &ONNXBackend{
		session: session,
		cfg:     cfg,
		logger:  logger.With().Str("component", "embedding").Logger(),
	}, nil
}

// Embed implements Backend.
func (b *ONNXBackend) Embed(ctx context.Context, image []byte) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := preprocess(image, b.cfg.InputSize)
	if err != nil {
		return nil, err
	}

	size := int64(b.cfg.InputSize)
	input, err := ort.NewTensor(ort.NewShape(1, 3, size, size), data)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(b.cfg.OutputDim)))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer output.Destroy()

	b.mu.Lock()
	err = b.session.Run([]ort.Value{input}, []ort.Value{output})
	b.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("run embedding model: %w", err)
	}

	return normalizeVector(output.GetData()), nil
}

// Dimensions implements Backend.
func (b *ONNXBackend) Dimensions() int {
	return b.cfg.OutputDim
}

// Close implements Backend.
func (b *ONNXBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session != nil {
		if err := b.session.Destroy(); err != nil {
			return fmt.Errorf("destroy onnx session: %w", err)
		}
		b.session = nil
	}
	return nil
}

// normalizeVector returns the L2-normalized copy of vec.
func normalizeVector(vec []float32) []float32 {
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
