// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/metrics"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreBadger = "badger"
)

const (
	sessionKeyPrefix  = "chat:"
	defaultSessionTTL = 24 * time.Hour
)

// ChatTurn is one question and its answer.
type ChatTurn struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	At        time.Time `json:"at"`
}

// SessionStore keeps chat history per session id. An unknown or expired
// session has an empty history.
type SessionStore interface {
	History(ctx context.Context, id string) ([]ChatTurn, error)
	// Append adds a turn, keeps at most maxTurns of the newest turns when
	// maxTurns > 0, refreshes the expiry and returns the stored history.
	Append(ctx context.Context, id string, turn ChatTurn, maxTurns int) ([]ChatTurn, error)
	Reset(ctx context.Context, id string) error
	Close() error
}

// NewSessionStore creates the store selected by cfg.SessionStore.
func NewSessionStore(cfg *config.RAGConfig) (SessionStore, error) {
	switch strings.ToLower(cfg.SessionStore) {
	case "", SessionStoreBadger:
		return OpenBadgerSessionStore(cfg.SessionPath, cfg.SessionTTL)
	case SessionStoreMemory:
		return NewMemorySessionStore(cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

func trimTurns(turns []ChatTurn, maxTurns int) []ChatTurn {
	if maxTurns > 0 && len(turns) > maxTurns {
		turns = append([]ChatTurn(nil), turns[len(turns)-maxTurns:]...)
	}
	return turns
}

// BadgerSessionStore persists sessions in BadgerDB. Each session is one key
// holding its JSON-encoded turns, written with a TTL so idle sessions expire.
type BadgerSessionStore struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenBadgerSessionStore opens (or creates) a store at path. An empty path
// opens an in-memory database.
func OpenBadgerSessionStore(path string, ttl time.Duration) (*BadgerSessionStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for chat sessions: %w", err)
	}
	return NewBadgerSessionStore(db, ttl), nil
}

// NewBadgerSessionStore wraps an open database.
func NewBadgerSessionStore(db *badger.DB, ttl time.Duration) *BadgerSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &BadgerSessionStore{db: db, ttl: ttl}
}

func readTurns(txn *badger.Txn, key []byte) ([]ChatTurn, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var turns []ChatTurn
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &turns)
	}); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return turns, nil
}

// History returns the turns of session id.
func (s *BadgerSessionStore) History(_ context.Context, id string) (turns []ChatTurn, err error) {
	defer func() { metrics.RecordSessionOperation("get", err) }()
	err = s.db.View(func(txn *badger.Txn) error {
		var rerr error
		turns, rerr = readTurns(txn, []byte(sessionKeyPrefix+id))
		return rerr
	})
	return turns, err
}

// Append implements SessionStore.
func (s *BadgerSessionStore) Append(_ context.Context, id string, turn ChatTurn, maxTurns int) (turns []ChatTurn, err error) {
	defer func() { metrics.RecordSessionOperation("append", err) }()
	key := []byte(sessionKeyPrefix + id)

	err = s.db.Update(func(txn *badger.Txn) error {
		existing, rerr := readTurns(txn, key)
		if rerr != nil {
			return rerr
		}
		turns = trimTurns(append(existing, turn), maxTurns)

		data, merr := json.Marshal(turns)
		if merr != nil {
			return fmt.Errorf("marshal session: %w", merr)
		}
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(s.ttl))
	})
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// Reset deletes session id.
func (s *BadgerSessionStore) Reset(_ context.Context, id string) (err error) {
	defer func() { metrics.RecordSessionOperation("reset", err) }()
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(sessionKeyPrefix + id)); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// Count returns the number of live sessions.
func (s *BadgerSessionStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close closes the database.
func (s *BadgerSessionStore) Close() error {
	return s.db.Close()
}

type memorySession struct {
	turns     []ChatTurn
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process memory.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &MemorySessionStore{sessions: make(map[string]*memorySession), ttl: ttl, now: time.Now}
}

func (s *MemorySessionStore) live(id string) *memorySession {
	sess, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return nil
	}
	return sess
}

// History implements SessionStore.
func (s *MemorySessionStore) History(_ context.Context, id string) ([]ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(id)
	if sess == nil {
		return nil, nil
	}
	return append([]ChatTurn(nil), sess.turns...), nil
}

// Append implements SessionStore.
func (s *MemorySessionStore) Append(_ context.Context, id string, turn ChatTurn, maxTurns int) ([]ChatTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.live(id)
	if sess == nil {
		sess = &memorySession{}
		s.sessions[id] = sess
	}
	sess.turns = trimTurns(append(sess.turns, turn), maxTurns)
	sess.expiresAt = s.now().Add(s.ttl)
	metrics.RecordSessionOperation("append", nil)
	return append([]ChatTurn(nil), sess.turns...), nil
}

// Reset implements SessionStore.
func (s *MemorySessionStore) Reset(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	metrics.RecordSessionOperation("reset", nil)
	return nil
}

// Close implements SessionStore.
func (s *MemorySessionStore) Close() error {
	return nil
}
