package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/PageGuard/internal/models"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const (
	sessionPrefix = "session/"
	unlockPrefix  = "unlock/"
)

// Store is a BadgerDB-backed session and unlock store.
// It is safe for concurrent use.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// NewStore returns a Store whose sessions live for ttl.
func NewStore(db *badger.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

func sessionKey(sessionID string) []byte {
	return []byte(sessionPrefix + sessionID)
}

// unlockSessionPrefix is unambiguous because session ids are UUIDs and never contain '/'.
func unlockSessionPrefix(sessionID string) []byte {
	return []byte(unlockPrefix + sessionID + "/")
}

func unlockKey(sessionID, itemID string) []byte {
	return append(unlockSessionPrefix(sessionID), itemID...)
}

// Create starts a new session and returns its identifier.
func (s *Store) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(sessionKey(id), []byte{1}).WithTTL(s.ttl))
	})
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Exists reports whether sessionID names a live session.
func (s *Store) Exists(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(sessionKey(sessionID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup session: %w", err)
	}
	return true, nil
}

// IsUnlocked reports whether the session has unlocked itemID.
// An empty session id has no unlock state.
func (s *Store) IsUnlocked(ctx context.Context, sessionID, itemID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(unlockKey(sessionID, itemID))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup unlock: %w", err)
	}
	return true, nil
}

// MarkUnlocked records that the session unlocked itemID. The entry expires
// with the session. Returns models.ErrSessionUnavailable if the session is
// unknown or already expired.
func (s *Store) MarkUnlocked(ctx context.Context, sessionID, itemID string) error {
	if sessionID == "" {
		return models.ErrSessionUnavailable
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		marker, err := txn.Get(sessionKey(sessionID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return models.ErrSessionUnavailable
		}
		if err != nil {
			return err
		}
		e := badger.NewEntry(unlockKey(sessionID, itemID), []byte{1})
		e.ExpiresAt = marker.ExpiresAt()
		return txn.SetEntry(e)
	})
	if err != nil && !errors.Is(err, models.ErrSessionUnavailable) {
		return fmt.Errorf("mark unlocked: %w", err)
	}
	return err
}

// End removes the session and every unlock it holds.
func (s *Store) End(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	prefix := unlockSessionPrefix(sessionID)
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(sessionKey(sessionID)); err != nil {
			return err
		}
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
