// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package api

import (
	"net/http"

	"github.com/tomtom215/newsprep/internal/events"
)

// EventAccepted is the body of a 201 from POST /api/events.
type EventAccepted struct {
	OK bool `json:"ok"`
}

// PostEvent handles POST /api/events
//
// @Summary Record a user interaction
// @Description Accepts view, like, bookmark, quiz_attempt, share and click events. The event is published to the event bus, or processed inline in synchronous mode.
// @Tags Events
// @Accept json
// @Param event body events.Event true "Interaction"
// @Success 201 {object} APIResponse{data=EventAccepted}
// @Failure 400 {object} APIResponse
// @Router /events [post]
func (h *Handler) PostEvent(w http.ResponseWriter, r *http.Request) {
	var ev events.Event
	if respondValidation(w, r, decodeJSON(w, r, &ev, false)) {
		return
	}

	if err := h.events.Submit(r.Context(), &ev); err != nil {
		respondServiceError(w, r, err, "post_event")
		return
	}
	NewResponseWriter(w, r).Created(EventAccepted{OK: true})
}
