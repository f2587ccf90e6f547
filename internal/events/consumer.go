// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/logging"
	"github.com/tomtom215/newsprep/internal/metrics"
)

// InteractionStore persists interactions.
type InteractionStore interface {
	RecordInteraction(ctx context.Context, in *database.Interaction) error
}

// Consumer persists events: the journal first (best effort), then the
// interaction row and article counters (required).
type Consumer struct {
	store   InteractionStore
	journal *Journal
	logger  zerolog.Logger
}

// NewConsumer creates a consumer. journal may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConsumer(store InteractionStore, journal *Journal, logger zerolog.Logger) *Consumer {
	return &Consumer{
		store:   store,
		journal: journal,
		logger:  logger.With().Str("component", "event_consumer").Logger(),
	}
}

// Process journals and stores one event.
func (c *Consumer) Process(ctx context.Context, ev *Event) (err error) {
	start := time.Now()
	defer func() { metrics.RecordEventProcessed(ev.Event, time.Since(start), err) }()

	if jerr := c.journal.Append(ev); jerr != nil {
		c.logger.Warn().Err(jerr).Str("journal", c.journal.Path()).Msg("Failed to journal event")
	}

	if err := c.store.RecordInteraction(ctx, ev.Interaction()); err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}
	return nil
}

// Handle is the Watermill handler. Undecodable or invalid payloads are
// dropped since retrying cannot fix them; store failures are returned so the
// router retries them.
func (c *Consumer) Handle(msg *message.Message) error {
	ev, err := Unmarshal(msg.Payload)
	if err == nil {
		err = ev.Validate()
	}
	if err != nil {
		c.logger.Error().Err(err).Str("message_uuid", msg.UUID).Msg("Dropping malformed event")
		metrics.RecordEventProcessed("invalid", 0, err)
		return nil
	}

	ctx := msg.Context()
	if id := msg.Metadata.Get(MetadataCorrelationID); id != "" {
		ctx = logging.ContextWithCorrelationID(ctx, id)
	}
	return c.Process(ctx, ev)
}
