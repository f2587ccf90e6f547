// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/events"
	"github.com/tomtom215/newsprep/internal/logging"
)

// EventComponents holds the interaction pipeline. Bus and Router are nil
// when events are processed synchronously.
type EventComponents struct {
	Ingestor *events.Ingestor
	Bus      *events.Bus
	Router   *message.Router
	Journal  *events.Journal
	NATS     *events.EmbeddedServer
}

// Close flushes the journal, closes the bus and stops the embedded NATS
// server. The router is closed by its supervisor service.
func (e *EventComponents) Close() {
	if e.Bus != nil {
		if err := e.Bus.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing event bus")
		}
	}
	if e.NATS != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := e.NATS.Shutdown(ctx); err != nil {
			logging.Warn().Err(err).Msg("Error stopping embedded NATS server")
		}
		cancel()
	}
	if e.Journal != nil {
		if err := e.Journal.Close(); err != nil {
			logging.Warn().Err(err).Msg("Error closing event journal")
		}
	}
}

// initEvents wires the consumer to the configured transport. With
// events.synchronous the consumer runs inline in the request.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func initEvents(cfg *config.EventsConfig, db *database.DB, logger zerolog.Logger) (*EventComponents, error) {
	journal, err := events.OpenJournal(cfg.JournalPath)
	if err != nil {
		return nil, err
	}
	consumer := events.NewConsumer(db, journal, logger)
	ec := &EventComponents{Journal: journal}

	if cfg.Synchronous {
		ec.Ingestor = events.NewSyncIngestor(consumer)
		logger.Info().Str("journal", journal.Path()).Msg("Events processed synchronously")
		return ec, nil
	}

	busCfg := *cfg
	if busCfg.Transport == "nats" && busCfg.EmbeddedNATS {
		srv, err := events.NewEmbeddedServer(&events.EmbeddedServerConfig{
			Port:     -1,
			StoreDir: busCfg.NATSStoreDir,
		})
		if err != nil {
			ec.Close()
			return nil, fmt.Errorf("embedded nats: %w", err)
		}
		ec.NATS = srv
		busCfg.NATSURL = srv.ClientURL()
		logger.Info().Str("url", srv.ClientURL()).Str("store", busCfg.NATSStoreDir).Msg("Embedded NATS server started")
	}

	wmLogger := logging.NewWatermillAdapter(logger)
	bus, err := events.NewBus(&busCfg, wmLogger)
	if err != nil {
		ec.Close()
		return nil, fmt.Errorf("event bus: %w", err)
	}
	ec.Bus = bus

	router, err := events.NewRouter(events.RouterConfig{
		CloseTimeout:  cfg.CloseTimeout,
		RetryCount:    cfg.RetryCount,
		RetryInterval: cfg.RetryInterval,
	}, bus, consumer, wmLogger)
	if err != nil {
		ec.Close()
		return nil, err
	}
	ec.Router = router
	ec.Ingestor = events.NewAsyncIngestor(bus, router.Running())

	logger.Info().
		Str("transport", bus.Transport()).
		Str("topic", bus.Topic()).
		Str("journal", journal.Path()).
		Msg("Event pipeline configured")
	return ec, nil
}
