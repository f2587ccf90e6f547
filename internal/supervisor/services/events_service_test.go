// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type fakeRouter struct {
	runErr error
	closed chan struct{}
}

func (f *fakeRouter) Run(ctx context.Context) error {
	if f.runErr != nil {
		return f.runErr
	}
	select {
	case <-ctx.Done():
	case <-f.closed:
	}
	return nil
}

func (f *fakeRouter) Close() error {
	close(f.closed)
	return nil
}

func TestEventRouterService_RunError(t *testing.T) {
	connErr := errors.New("nats: no servers available")
	svc := NewEventRouterService(&fakeRouter{runErr: connErr, closed: make(chan struct{})}, time.Second)

	if err := svc.Serve(context.Background()); !errors.Is(err, connErr) {
		t.Errorf("Serve() = %v, want %v", err, connErr)
	}
}

func TestEventRouterService_Shutdown(t *testing.T) {
	svc := NewEventRouterService(&fakeRouter{closed: make(chan struct{})}, time.Second)
	if svc.String() != "event-router" {
		t.Errorf("String() = %q", svc.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
}

func TestEventRouterService_WatermillRouter(t *testing.T) {
	logger := watermill.NopLogger{}
	pubsub := gochannel.NewGoChannel(gochannel.Config{}, logger)
	defer pubsub.Close()

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: time.Second}, logger)
	if err != nil {
		t.Fatal(err)
	}
	received := make(chan string, 1)
	router.AddConsumerHandler("test", "events", pubsub, func(msg *message.Message) error {
		received <- string(msg.Payload)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewEventRouterService(router, time.Second).Serve(ctx) }()

	<-router.Running()
	if err := pubsub.Publish("events", message.NewMessage(watermill.NewUUID(), []byte("view"))); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-received:
		if got != "view" {
			t.Errorf("payload = %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}
