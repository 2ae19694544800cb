// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package embedding turns captured images into fixed-length feature vectors
// for visual landmark matching.
//
// The production backend runs an ONNX image model through ONNX Runtime. The
// backend is optional at startup: when the model asset or runtime library is
// missing the service falls back to a disabled backend whose Embed always
// errors, and the recognition pipeline degrades to GPS-only scoring.
package embedding
