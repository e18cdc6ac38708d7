// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created on first use and shared by every
// handler. Field errors are reported by their JSON or query parameter names
// and converted to the API's VALIDATION_ERROR format.
//
// Custom tags:
//   - notblank: string must contain a non-space character
//   - mood: string must name a supported mood (case-insensitive)
//
// Example usage:
//
//	type moodQuery struct {
//	    Limit int `query:"limit" validate:"min=1,max=50"`
//	    Page  int `query:"page" validate:"min=1,max=10"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
package validation
