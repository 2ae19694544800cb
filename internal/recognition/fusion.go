// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package recognition

// gpsSignal is the GPS half of a fusion input.
type gpsSignal struct {
	landmarkID int64
	matched    bool
	score      float64
}

// ScoreBundle is the fused scoring state of one recognition attempt.
type ScoreBundle struct {
	GPSLandmarkID    int64
	GPSMatched       bool
	GPSScore         float64
	VisualLandmarkID int64
	VisualMatched    bool
	VisualScore      float64

	// AgreementBonus is true when both signals named the same landmark.
	AgreementBonus bool

	// Confidence is the weighted sum plus bonus. Not clamped; it can reach
	// 1.3 when the bonus applies.
	Confidence float64

	// ChosenID is the selected landmark, valid only when Chosen is true.
	ChosenID int64
	Chosen   bool
}

// fuseScores combines the GPS and visual signals into one bundle.
//
// Selection favors the visual identity whenever its score is at least the
// GPS score, not only on strict ties. The asymmetry is inherited from the
// tuned production behavior and deliberately kept.
func fuseScores(cfg Config, gps gpsSignal, visual VisualMatch) ScoreBundle {
	b := ScoreBundle{
		GPSLandmarkID:    gps.landmarkID,
		GPSMatched:       gps.matched,
		GPSScore:         gps.score,
		VisualLandmarkID: visual.LandmarkID,
		VisualMatched:    visual.Matched,
		VisualScore:      visual.VisualScore,
	}

	b.AgreementBonus = gps.matched && visual.Matched && gps.landmarkID == visual.LandmarkID

	b.Confidence = cfg.VisualWeight*b.VisualScore + cfg.GPSWeight*b.GPSScore
	if b.AgreementBonus {
		b.Confidence += cfg.AgreementBonus
	}

	switch {
	case visual.Matched && b.VisualScore >= b.GPSScore:
		b.ChosenID, b.Chosen = visual.LandmarkID, true
	case gps.matched:
		b.ChosenID, b.Chosen = gps.landmarkID, true
	case visual.Matched:
		b.ChosenID, b.Chosen = visual.LandmarkID, true
	}

	return b
}
