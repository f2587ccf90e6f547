// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package events

import (
	"context"
	"fmt"
	"time"
)

// Ingestor is the entry point used by the HTTP handler. In synchronous mode
// events are processed inline; otherwise they are published once the router
// is running.
type Ingestor struct {
	bus      *Bus
	consumer *Consumer
	ready    <-chan struct{}
	sync     bool
	now      func() time.Time
}

// NewSyncIngestor processes every event inline with consumer.
func NewSyncIngestor(consumer *Consumer) *Ingestor {
	return &Ingestor{consumer: consumer, sync: true, now: time.Now}
}

// NewAsyncIngestor publishes to bus. Submit waits for ready (usually
// router.Running()) so that in-process subscribers do not miss events.
func NewAsyncIngestor(bus *Bus, ready <-chan struct{}) *Ingestor {
	return &Ingestor{bus: bus, ready: ready, now: time.Now}
}

// Synchronous reports whether events are processed inline.
func (i *Ingestor) Synchronous() bool {
	return i.sync
}

// Submit validates, timestamps and hands off one event.
func (i *Ingestor) Submit(ctx context.Context, ev *Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	ev.Normalize(i.now())

	if i.sync {
		return i.consumer.Process(ctx, ev)
	}

	if i.ready != nil {
		select {
		case <-i.ready:
		case <-ctx.Done():
			return fmt.Errorf("event bus not running: %w", ctx.Err())
		}
	}
	return i.bus.Publish(ctx, ev)
}
