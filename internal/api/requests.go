// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package api

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// maxImageBytes bounds the uploaded photo size.
const maxImageBytes = 10 << 20 // 10 MiB

// validate is the shared validator instance. validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = validator.New()

// RecognizeParams are the optional form fields of a recognize request.
// Coordinates are absent when the client has no fix; the server then falls
// back to its own location source.
type RecognizeParams struct {
	Latitude  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `validate:"omitempty,gte=-180,lte=180"`
}

// NearbyParams are the query parameters of a nearby-landmarks request.
type NearbyParams struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	RadiusKm  float64 `validate:"gt=0,lte=500"`
}

// RadiusUpdateRequest is the body of a radius preference update.
type RadiusUpdateRequest struct {
	RadiusKm float64 `json:"radius_km" validate:"gt=0,lte=500"`
}

// parseOptionalCoordinate parses a form value into a coordinate pointer.
// Empty values stay nil.
func parseOptionalCoordinate(raw, field string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", field)
	}
	return &v, nil
}

// validationDetails flattens validator errors into a field -> constraint map
// suitable for the error response body.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		details["error"] = err.Error()
		return details
	}

	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
