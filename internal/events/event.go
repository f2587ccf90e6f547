// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/validation"
)

// Event is a user interaction with an article.
type Event struct {
	UserID  *int64         `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	Event   string         `json:"event" validate:"required,eventtype"`
	ItemID  int64          `json:"item_id" validate:"gt=0"`
	Context map[string]any `json:"context,omitempty"`
	TS      time.Time      `json:"ts"`
}

// Validate checks the event against its struct tags.
func (e *Event) Validate() error {
	if verr := validation.ValidateStruct(e); verr != nil {
		return verr
	}
	return nil
}

// Normalize stamps a missing timestamp with now and converts it to UTC.
func (e *Event) Normalize(now time.Time) {
	if e.TS.IsZero() {
		e.TS = now
	}
	e.TS = e.TS.UTC()
}

// Interaction converts the event to its database row.
func (e *Event) Interaction() *database.Interaction {
	return &database.Interaction{
		UserID:    e.UserID,
		ArticleID: e.ItemID,
		EventType: e.Event,
		Timestamp: e.TS,
	}
}

// Marshal encodes the event as JSON.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal decodes a JSON event.
func Unmarshal(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &e, nil
}
