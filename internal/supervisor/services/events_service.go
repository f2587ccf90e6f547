// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package services

import (
	"context"
	"fmt"
	"time"
)

// MessageRouter is the lifecycle subset of *message.Router.
type MessageRouter interface {
	Run(ctx context.Context) error
	Close() error
}

// EventRouterService runs the Watermill event router under supervision.
//
// Run blocks until its context is canceled, then closes the handlers. A
// Run error (for example a NATS subscriber that cannot connect) is returned
// so that suture restarts the service with backoff.
//
//	router, _ := events.NewRouter(events.DefaultRouterConfig(), bus, consumer, wmLogger)
//	tree.AddMessagingService(services.NewEventRouterService(router, 10*time.Second))
type EventRouterService struct {
	router       MessageRouter
	closeTimeout time.Duration
	name         string
}

// NewEventRouterService creates the wrapper. A non-positive closeTimeout
// becomes 10s.
func NewEventRouterService(router MessageRouter, closeTimeout time.Duration) *EventRouterService {
	if closeTimeout <= 0 {
		closeTimeout = 10 * time.Second
	}
	return &EventRouterService{
		router:       router,
		closeTimeout: closeTimeout,
		name:         "event-router",
	}
}

// Serve implements suture.Service.
func (s *EventRouterService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.router.Run(ctx)
	}()

	select {
	case err := <-errCh:
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fmt.Errorf("event router failed: %w", err)
		}
		return fmt.Errorf("event router stopped unexpectedly")

	case <-ctx.Done():
		if err := s.router.Close(); err != nil {
			return fmt.Errorf("event router close failed: %w", err)
		}
		select {
		case <-errCh:
		case <-time.After(s.closeTimeout):
			return fmt.Errorf("event router did not stop within %s", s.closeTimeout)
		}
		return ctx.Err()
	}
}

// String names the service in supervisor logs.
func (s *EventRouterService) String() string {
	return s.name
}
