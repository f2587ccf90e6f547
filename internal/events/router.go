// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

const handlerName = "record_interactions"

// RouterConfig tunes the consumer router.
type RouterConfig struct {
	CloseTimeout    time.Duration
	RetryCount      int
	RetryInterval   time.Duration
	RetryMaxBackoff time.Duration
}

// DefaultRouterConfig returns the production defaults.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:    10 * time.Second,
		RetryCount:      3,
		RetryInterval:   100 * time.Millisecond,
		RetryMaxBackoff: 5 * time.Second,
	}
}

// NewRouter builds a Watermill router that feeds the bus topic to the
// consumer. Middleware, outer to inner: Recoverer turns panics into errors,
// Retry re-runs failed handlers with exponential backoff.
func NewRouter(cfg RouterConfig, bus *Bus, consumer *Consumer, logger watermill.LoggerAdapter) (*message.Router, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	def := DefaultRouterConfig()
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = def.CloseTimeout
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = def.RetryInterval
	}
	if cfg.RetryMaxBackoff <= 0 {
		cfg.RetryMaxBackoff = def.RetryMaxBackoff
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      cfg.RetryCount,
		InitialInterval: cfg.RetryInterval,
		MaxInterval:     cfg.RetryMaxBackoff,
		Multiplier:      2.0,
		Logger:          logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddConsumerHandler(handlerName, bus.Topic(), bus.Subscriber(), consumer.Handle)
	return router, nil
}
