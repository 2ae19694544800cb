// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecognition(t *testing.T) {
	before := testutil.ToFloat64(RecognitionsTotal.WithLabelValues("success"))
	bonusBefore := testutil.ToFloat64(AgreementBonusTotal)

	RecordRecognition("success", 0.71, true, 80*time.Millisecond)

	if got := testutil.ToFloat64(RecognitionsTotal.WithLabelValues("success")); got != before+1 {
		t.Errorf("success counter = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(AgreementBonusTotal); got != bonusBefore+1 {
		t.Errorf("bonus counter = %v, want %v", got, bonusBefore+1)
	}
}

func TestRecordRecognition_NoBonus(t *testing.T) {
	bonusBefore := testutil.ToFloat64(AgreementBonusTotal)

	RecordRecognition("no_match", 0.2, false, 10*time.Millisecond)

	if got := testutil.ToFloat64(AgreementBonusTotal); got != bonusBefore {
		t.Errorf("bonus counter = %v, want unchanged %v", got, bonusBefore)
	}
}

func TestRecordCacheRefresh(t *testing.T) {
	refreshBefore := testutil.ToFloat64(NearbyCacheRefreshes)
	expandBefore := testutil.ToFloat64(NearbyCacheExpansions)

	RecordCacheRefresh(false, 12)
	RecordCacheRefresh(true, 3)

	if got := testutil.ToFloat64(NearbyCacheRefreshes); got != refreshBefore+2 {
		t.Errorf("refresh counter = %v, want %v", got, refreshBefore+2)
	}
	if got := testutil.ToFloat64(NearbyCacheExpansions); got != expandBefore+1 {
		t.Errorf("expansion counter = %v, want %v", got, expandBefore+1)
	}
	if got := testutil.ToFloat64(NearbyCacheSize); got != 3 {
		t.Errorf("cache size gauge = %v, want 3", got)
	}
}

func TestRecordProviderFailure(t *testing.T) {
	before := testutil.ToFloat64(ProviderFailures.WithLabelValues("location"))

	RecordProviderFailure("location")

	if got := testutil.ToFloat64(ProviderFailures.WithLabelValues("location")); got != before+1 {
		t.Errorf("provider failure counter = %v, want %v", got, before+1)
	}
}

func TestConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				RecordRecognition("success", 0.8, j%2 == 0, time.Millisecond)
				RecordStage("gps", time.Millisecond)
				RecordProviderFailure("embedding")
			}
		}()
	}
	wg.Wait()
}
