// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package api

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/recognition"
)

// Recognizer runs one recognition attempt. recognition.Engine satisfies it.
type Recognizer interface {
	Recognize(ctx context.Context, req recognition.Request) recognition.Result
}

// RadiusStore reads and writes the detection radius preference.
// prefs.RadiusPreferences satisfies it.
type RadiusStore interface {
	DetectionRadiusKm(ctx context.Context) float64
	SetDetectionRadiusKm(ctx context.Context, radiusKm float64) error
}

// AssetStats reports the loaded dataset sizes for the health endpoint.
type AssetStats struct {
	Landmarks  int
	Prototypes int

	// VisualMatching is false when no embedding backend is configured.
	VisualMatching bool
}

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	engine    Recognizer
	landmarks recognition.LandmarkProvider
	prefs     RadiusStore

	// onRadiusChange is invoked after a successful radius update, so the
	// nearby cache can be invalidated.
	onRadiusChange func()

	stats     AssetStats
	startTime time.Time
	logger    zerolog.Logger
}

// NewHandler creates the API handler set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandler(
	engine Recognizer,
	landmarks recognition.LandmarkProvider,
	prefs RadiusStore,
	onRadiusChange func(),
	stats AssetStats,
	logger zerolog.Logger,
) *Handler {
	if onRadiusChange == nil {
		onRadiusChange = func() {}
	}
	return &Handler{
		engine:         engine,
		landmarks:      landmarks,
		prefs:          prefs,
		onRadiusChange: onRadiusChange,
		stats:          stats,
		startTime:      time.Now(),
		logger:         logger.With().Str("component", "api").Logger(),
	}
}

// recognitionResponse is the recognize endpoint payload.
type recognitionResponse struct {
	Outcome        string  `json:"outcome"`
	LandmarkID     *int64  `json:"landmark_id,omitempty"`
	Name           string  `json:"name,omitempty"`
	Description    string  `json:"description,omitempty"`
	Message        string  `json:"message,omitempty"`
	Confidence     float64 `json:"confidence"`
	VisualScore    float64 `json:"visual_score"`
	GPSScore       float64 `json:"gps_score"`
	AgreementBonus bool    `json:"agreement_bonus"`
}

// Recognize handles POST /api/v1/recognize. The request is multipart form
// data with an "image" file and optional "latitude"/"longitude" fields.
func (h *Handler) Recognize(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		rw.BadRequest("Request must be multipart form data with an image file.")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		rw.BadRequest("Missing image file in form field 'image'.")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		rw.BadRequest("Could not read the uploaded image.")
		return
	}
	if len(image) == 0 {
		rw.BadRequest("Uploaded image is empty.")
		return
	}
	if len(image) > maxImageBytes {
		rw.BadRequest("Uploaded image exceeds the 10 MiB limit.")
		return
	}

	params, err := parseRecognizeParams(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if err := validate.Struct(params); err != nil {
		rw.ValidationError("Invalid coordinates.", validationDetails(err))
		return
	}

	req := recognition.Request{Image: image}
	if params.Latitude != nil && params.Longitude != nil {
		req.Position = &models.Coordinates{
			Latitude:  *params.Latitude,
			Longitude: *params.Longitude,
		}
	}

	result := h.engine.Recognize(r.Context(), req)

	resp := recognitionResponse{
		Outcome:        result.Outcome.String(),
		Name:           result.Name,
		Description:    result.Description,
		Message:        result.Message,
		Confidence:     result.Confidence,
		VisualScore:    result.VisualScore,
		GPSScore:       result.GPSScore,
		AgreementBonus: result.AgreementBonus,
	}
	if result.Outcome == recognition.OutcomeSuccess {
		id := result.LandmarkID
		resp.LandmarkID = &id
	}

	rw.Success(resp)
}

// parseRecognizeParams extracts the optional coordinate form fields.
func parseRecognizeParams(r *http.Request) (RecognizeParams, error) {
	var params RecognizeParams

	lat, err := parseOptionalCoordinate(r.FormValue("latitude"), "latitude")
	if err != nil {
		return params, err
	}
	lon, err := parseOptionalCoordinate(r.FormValue("longitude"), "longitude")
	if err != nil {
		return params, err
	}

	params.Latitude = lat
	params.Longitude = lon
	return params, nil
}

// GetLandmark handles GET /api/v1/landmarks/{id}.
func (h *Handler) GetLandmark(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		rw.BadRequest("Landmark id must be an integer.")
		return
	}

	landmark, err := h.landmarks.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int64("landmark_id", id).Msg("landmark lookup failed")
		rw.InternalError("Landmark lookup failed.")
		return
	}
	if landmark == nil {
		rw.NotFound("No landmark with that id.")
		return
	}

	rw.Success(landmark)
}

// nearbyResponse is the nearby-landmarks payload.
type nearbyResponse struct {
	Landmarks []*models.Landmark `json:"landmarks"`
	Count     int                `json:"count"`
	RadiusKm  float64            `json:"radius_km"`
}

// GetNearby handles GET /api/v1/landmarks/nearby?lat=..&lon=..&radius_km=..
// The radius defaults to the stored preference when omitted.
func (h *Handler) GetNearby(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	params, err := h.parseNearbyParams(r)
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if err := validate.Struct(params); err != nil {
		rw.ValidationError("Invalid query parameters.", validationDetails(err))
		return
	}

	found, err := h.landmarks.GetNearby(r.Context(), params.Latitude, params.Longitude, params.RadiusKm)
	if err != nil {
		h.logger.Error().Err(err).Msg("nearby lookup failed")
		rw.InternalError("Nearby lookup failed.")
		return
	}

	rw.Success(nearbyResponse{
		Landmarks: found,
		Count:     len(found),
		RadiusKm:  params.RadiusKm,
	})
}

// parseNearbyParams extracts and defaults the nearby query parameters.
func (h *Handler) parseNearbyParams(r *http.Request) (NearbyParams, error) {
	var params NearbyParams

	q := r.URL.Query()
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return params, errInvalidParam("lat")
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return params, errInvalidParam("lon")
	}

	radius := h.prefs.DetectionRadiusKm(r.Context())
	if raw := q.Get("radius_km"); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return params, errInvalidParam("radius_km")
		}
	}

	params.Latitude = lat
	params.Longitude = lon
	params.RadiusKm = radius
	return params, nil
}

// radiusResponse is the radius preference payload.
type radiusResponse struct {
	RadiusKm float64 `json:"radius_km"`
}

// GetRadius handles GET /api/v1/preferences/radius.
func (h *Handler) GetRadius(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(radiusResponse{
		RadiusKm: h.prefs.DetectionRadiusKm(r.Context()),
	})
}

// PutRadius handles PUT /api/v1/preferences/radius.
func (h *Handler) PutRadius(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RadiusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("Request body must be JSON with a radius_km field.")
		return
	}
	if err := validate.Struct(req); err != nil {
		rw.ValidationError("Invalid radius.", validationDetails(err))
		return
	}

	if err := h.prefs.SetDetectionRadiusKm(r.Context(), req.RadiusKm); err != nil {
		h.logger.Error().Err(err).Msg("radius update failed")
		rw.InternalError("Could not store the radius preference.")
		return
	}

	h.onRadiusChange()
	rw.Success(radiusResponse{RadiusKm: req.RadiusKm})
}

// healthResponse is the health endpoint payload.
type healthResponse struct {
	Status         string `json:"status"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	Landmarks      int    `json:"landmarks"`
	Prototypes     int    `json:"prototypes"`
	VisualMatching bool   `json:"visual_matching"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(healthResponse{
		Status:         "ok",
		UptimeSeconds:  int64(time.Since(h.startTime).Seconds()),
		Landmarks:      h.stats.Landmarks,
		Prototypes:     h.stats.Prototypes,
		VisualMatching: h.stats.VisualMatching,
	})
}

// errInvalidParam builds the shared bad-parameter error.
func errInvalidParam(name string) error {
	return &paramError{name: name}
}

type paramError struct{ name string }

func (e *paramError) Error() string {
	return "Query parameter '" + e.name + "' must be a number."
}
