// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package events

import (
	"bufio"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/logging"
)

type fakeStore struct {
	mu       sync.Mutex
	failures int
	calls    int
	rows     []*database.Interaction
	done     chan struct{}
}

func newFakeStore(failures int) *fakeStore {
	return &fakeStore{failures: failures, done: make(chan struct{}, 8)}
}

func (s *fakeStore) RecordInteraction(_ context.Context, in *database.Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return errors.New("database is locked")
	}
	s.rows = append(s.rows, in)
	s.done <- struct{}{}
	return nil
}

func (s *fakeStore) snapshot() (int, []*database.Interaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, append([]*database.Interaction(nil), s.rows...)
}

func int64Ptr(v int64) *int64 { return &v }

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ev      Event
		wantErr bool
	}{
		{"valid", Event{Event: "view", ItemID: 1}, false},
		{"valid with user", Event{UserID: int64Ptr(7), Event: "quiz_attempt", ItemID: 3}, false},
		{"missing event", Event{ItemID: 1}, true},
		{"unknown event", Event{Event: "purchase", ItemID: 1}, true},
		{"zero item", Event{Event: "view"}, true},
		{"negative user", Event{UserID: int64Ptr(-1), Event: "like", ItemID: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ev.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvent_Normalize(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	ev := Event{Event: "view", ItemID: 1}
	ev.Normalize(now)
	if !ev.TS.Equal(now) || ev.TS.Location() != time.UTC {
		t.Errorf("TS = %v, want %v in UTC", ev.TS, now)
	}

	set := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	ev = Event{Event: "view", ItemID: 1, TS: set}
	ev.Normalize(now)
	if !ev.TS.Equal(set) {
		t.Errorf("TS = %v, want %v", ev.TS, set)
	}
}

func TestEvent_RoundTrip(t *testing.T) {
	in := &Event{UserID: int64Ptr(4), Event: "share", ItemID: 9, Context: map[string]any{"ref": "mail"}}
	data, err := in.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	out, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if *out.UserID != 4 || out.Event != "share" || out.ItemID != 9 || out.Context["ref"] != "mail" {
		t.Errorf("round trip = %+v", out)
	}

	if _, err := Unmarshal([]byte("{")); err == nil {
		t.Error("Unmarshal() of truncated JSON should fail")
	}
}

func TestJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "events.jsonl")
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("OpenJournal() error = %v", err)
	}
	for _, id := range []int64{1, 2} {
		if err := j.Append(&Event{Event: "view", ItemID: id}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := j.Append(&Event{Event: "view", ItemID: 3}); err == nil {
		t.Error("Append() after Close() should fail")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		ev, err := Unmarshal(sc.Bytes())
		if err != nil {
			t.Fatalf("line %d: %v", lines, err)
		}
		lines++
		if ev.ItemID != int64(lines) {
			t.Errorf("line %d item_id = %d", lines, ev.ItemID)
		}
	}
	if lines != 2 {
		t.Errorf("journal has %d lines, want 2", lines)
	}
}

func TestJournal_Nil(t *testing.T) {
	j, err := OpenJournal("")
	if err != nil || j != nil {
		t.Fatalf("OpenJournal(\"\") = %v, %v; want nil, nil", j, err)
	}
	if err := j.Append(&Event{Event: "view", ItemID: 1}); err != nil {
		t.Errorf("nil Append() error = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
}

func TestConsumer_Process(t *testing.T) {
	store := newFakeStore(0)
	path := filepath.Join(t.TempDir(), "events.jsonl")
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatal(err)
	}
	defer j.Close()

	c := NewConsumer(store, j, zerolog.Nop())
	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	if err := c.Process(context.Background(), &Event{Event: "like", ItemID: 5, TS: ts}); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	_, rows := store.snapshot()
	if len(rows) != 1 || rows[0].ArticleID != 5 || rows[0].EventType != "like" || !rows[0].Timestamp.Equal(ts) {
		t.Errorf("stored rows = %+v", rows)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("journal not written: %v", err)
	}
}

func TestConsumer_ProcessStoreError(t *testing.T) {
	c := NewConsumer(newFakeStore(1), nil, zerolog.Nop())
	if err := c.Process(context.Background(), &Event{Event: "view", ItemID: 1}); err == nil {
		t.Error("Process() should return the store error")
	}
}

func TestConsumer_HandleDropsMalformed(t *testing.T) {
	store := newFakeStore(0)
	c := NewConsumer(store, nil, zerolog.Nop())

	for _, payload := range []string{"not json", `{"event":"bogus","item_id":1}`} {
		msg := message.NewMessage(watermill.NewUUID(), []byte(payload))
		if err := c.Handle(msg); err != nil {
			t.Errorf("Handle(%q) error = %v, want nil", payload, err)
		}
	}
	if calls, _ := store.snapshot(); calls != 0 {
		t.Errorf("store called %d times for malformed payloads", calls)
	}
}

func TestSyncIngestor(t *testing.T) {
	store := newFakeStore(0)
	ing := NewSyncIngestor(NewConsumer(store, nil, zerolog.Nop()))
	if !ing.Synchronous() {
		t.Fatal("Synchronous() = false")
	}

	if err := ing.Submit(context.Background(), &Event{Event: "frobnicate", ItemID: 1}); err == nil {
		t.Error("Submit() of invalid event should fail")
	}
	ev := &Event{Event: "click", ItemID: 2}
	if err := ing.Submit(context.Background(), ev); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if ev.TS.IsZero() {
		t.Error("Submit() did not stamp the event")
	}
	if _, rows := store.snapshot(); len(rows) != 1 {
		t.Errorf("stored %d rows, want 1", len(rows))
	}
}

func TestAsyncIngestor_WaitsForReady(t *testing.T) {
	bus, err := NewBus(&config.EventsConfig{Transport: "channel"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bus.Close()

	ing := NewAsyncIngestor(bus, make(chan struct{}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := ing.Submit(ctx, &Event{Event: "view", ItemID: 1}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Submit() error = %v, want deadline exceeded", err)
	}
}

func TestNewBus_UnknownTransport(t *testing.T) {
	if _, err := NewBus(&config.EventsConfig{Transport: "kafka"}, nil); err == nil {
		t.Error("NewBus() should reject unknown transports")
	}
	if _, err := NewBus(&config.EventsConfig{Transport: "nats"}, nil); err == nil {
		t.Error("NewBus() should require a NATS URL")
	}
}

func TestRouter_DeliversAndRetries(t *testing.T) {
	bus, err := NewBus(&config.EventsConfig{Transport: "channel", Topic: "test-events"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer bus.Close()

	store := newFakeStore(1)
	consumer := NewConsumer(store, nil, zerolog.Nop())
	router, err := NewRouter(RouterConfig{RetryCount: 3, RetryInterval: time.Millisecond}, bus, consumer, nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = router.Run(ctx) }()
	defer router.Close()

	ing := NewAsyncIngestor(bus, router.Running())
	submitCtx := logging.ContextWithCorrelationID(ctx, "corr-1")
	if err := ing.Submit(submitCtx, &Event{UserID: int64Ptr(3), Event: "bookmark", ItemID: 11}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	select {
	case <-store.done:
	case <-time.After(5 * time.Second):
		t.Fatal("event was not delivered")
	}

	calls, rows := store.snapshot()
	if calls != 2 {
		t.Errorf("store calls = %d, want 2 (one failure, one retry)", calls)
	}
	if len(rows) != 1 || rows[0].ArticleID != 11 || *rows[0].UserID != 3 {
		t.Errorf("stored rows = %+v", rows)
	}
}
