// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package prefs

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir()).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close badger: %v", err)
		}
	})
	return db
}

func TestBadgerPreferences_DefaultWhenUnset(t *testing.T) {
	p := NewBadgerPreferences(openTestDB(t), zerolog.Nop())

	if got := p.DetectionRadiusKm(context.Background()); got != DefaultRadiusKm {
		t.Errorf("DetectionRadiusKm() = %v, want default %v", got, DefaultRadiusKm)
	}
}

func TestBadgerPreferences_RoundTrip(t *testing.T) {
	p := NewBadgerPreferences(openTestDB(t), zerolog.Nop())
	ctx := context.Background()

	if err := p.SetDetectionRadiusKm(ctx, 25.5); err != nil {
		t.Fatalf("SetDetectionRadiusKm failed: %v", err)
	}
	if got := p.DetectionRadiusKm(ctx); got != 25.5 {
		t.Errorf("DetectionRadiusKm() = %v, want 25.5", got)
	}
}

func TestBadgerPreferences_RejectsNonPositive(t *testing.T) {
	p := NewBadgerPreferences(openTestDB(t), zerolog.Nop())

	for _, radius := range []float64{0, -1} {
		if err := p.SetDetectionRadiusKm(context.Background(), radius); err == nil {
			t.Errorf("SetDetectionRadiusKm(%v) succeeded, want error", radius)
		}
	}
}

func TestStatic(t *testing.T) {
	ctx := context.Background()

	if got := (Static{RadiusKm: 5}).DetectionRadiusKm(ctx); got != 5 {
		t.Errorf("DetectionRadiusKm() = %v, want 5", got)
	}
	if got := (Static{}).DetectionRadiusKm(ctx); got != DefaultRadiusKm {
		t.Errorf("zero Static radius = %v, want default %v", got, DefaultRadiusKm)
	}
	if err := (Static{}).SetDetectionRadiusKm(ctx, 5); err == nil {
		t.Error("Static.SetDetectionRadiusKm succeeded, want error")
	}
}
