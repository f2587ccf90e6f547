// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package events

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/config"
)

func startEmbeddedNATS(t *testing.T) *EmbeddedServer {
	t.Helper()
	if testing.Short() {
		t.Skip("embedded NATS server skipped in short mode")
	}
	srv, err := NewEmbeddedServer(&EmbeddedServerConfig{Port: -1, StoreDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewEmbeddedServer() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv
}

func TestNewEmbeddedServer_RequiresStoreDir(t *testing.T) {
	if _, err := NewEmbeddedServer(&EmbeddedServerConfig{Port: -1}); err == nil {
		t.Error("NewEmbeddedServer() without a store directory should fail")
	}
}

func TestEmbeddedServer_Lifecycle(t *testing.T) {
	srv := startEmbeddedNATS(t)
	if !srv.Running() {
		t.Error("Running() = false after start")
	}
	if !srv.JetStreamEnabled() {
		t.Error("JetStreamEnabled() = false")
	}
	if srv.ClientURL() == "" {
		t.Error("ClientURL() is empty")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if srv.Running() {
		t.Error("Running() = true after shutdown")
	}
}

func TestRouter_NATSTransport(t *testing.T) {
	srv := startEmbeddedNATS(t)
	exerciseNATSRouter(t, srv.ClientURL())
}

// exerciseNATSRouter publishes one event over the nats transport at url and
// waits for the router to store it.
func exerciseNATSRouter(t *testing.T, url string) {
	t.Helper()
	bus, err := NewBus(&config.EventsConfig{
		Transport:        "nats",
		NATSURL:          url,
		Topic:            "test-events",
		QueueGroup:       "test",
		DurableName:      "test-consumer",
		SubscribersCount: 1,
		CloseTimeout:     2 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewBus() error = %v", err)
	}
	defer bus.Close()
	if bus.Transport() != "nats" {
		t.Errorf("Transport() = %q, want nats", bus.Transport())
	}

	store := newFakeStore(0)
	router, err := NewRouter(RouterConfig{RetryCount: 1, RetryInterval: time.Millisecond}, bus, NewConsumer(store, nil, zerolog.Nop()), nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	defer router.Close()

	ing := NewAsyncIngestor(bus, router.Running())
	submitCtx, submitCancel := context.WithTimeout(ctx, 10*time.Second)
	defer submitCancel()
	if err := ing.Submit(submitCtx, &Event{Event: "view", ItemID: 42}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	select {
	case <-store.done:
	case <-time.After(15 * time.Second):
		t.Fatal("event was not delivered over NATS")
	}
	if _, rows := store.snapshot(); len(rows) == 0 || rows[0].ArticleID != 42 || rows[0].EventType != "view" {
		t.Errorf("stored rows = %+v", rows)
	}
}
