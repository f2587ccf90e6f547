// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is created on first use (validator caches
// struct metadata, so sharing it matters) with WithRequiredStructEnabled.
// Error field names follow the json or query struct tag.
//
// Custom tags:
//   - notblank: string contains a non-whitespace rune
//   - eventtype: one of the interaction event kinds in EventTypes
//
// Usage:
//
//	type askRequest struct {
//	    Query     string `json:"query" validate:"required,notblank,max=2000"`
//	    SessionID string `json:"session_id" validate:"omitempty,uuid"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
