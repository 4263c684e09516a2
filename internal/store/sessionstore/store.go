// Package sessionstore keeps login sessions in an embedded Badger database.
//
// Key layout:
//
//	session:<sessionID>                       JSON-encoded domain.Session
//	idx:sessions:user:<userID>:<sessionID>    empty, for listing a user's sessions
//
// Both keys are written with the session's remaining lifetime as their TTL, so
// Badger drops expired sessions on its own; DeleteExpiredSessions sweeps the rest.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/leadboard/leadboard-server/internal/domain"
	"github.com/leadboard/leadboard-server/internal/store"
)

const (
	sessionPrefix       = "session:"
	sessionByUserPrefix = "idx:sessions:user:"
)

var _ store.SessionStore = (*Store)(nil)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Options configures Open.
type Options struct {
	// InMemory keeps everything in RAM. Path is ignored.
	InMemory bool
}

// Open opens (or creates) the session database at path.
func Open(path string, logger *slog.Logger, o Options) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	opts := badger.DefaultOptions(path)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	logger.Info("session store opened", "path", path, "in_memory", o.InMemory)
	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	s.logger.Info("closing session store")
	return s.db.Close()
}

func sessionKey(id string) []byte {
	return []byte(sessionPrefix + id)
}

func userIndexKey(userID, sessionID string) []byte {
	return []byte(sessionByUserPrefix + userID + ":" + sessionID)
}

// writeSession stores the record and its user index with the remaining TTL.
func writeSession(txn *badger.Txn, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := session.TTL()
	if ttl <= 0 {
		return store.ErrSessionExpired
	}

	if err := txn.SetEntry(badger.NewEntry(sessionKey(session.ID), data).WithTTL(ttl)); err != nil {
		return err
	}
	return txn.SetEntry(badger.NewEntry(userIndexKey(session.UserID, session.ID), nil).WithTTL(ttl))
}

// readSession loads a session record regardless of its expiry.
func readSession(txn *badger.Txn, id string) (*domain.Session, error) {
	item, err := txn.Get(sessionKey(id))
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &session)
	}); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// CreateSession stores a new session.
func (s *Store) CreateSession(_ context.Context, session *domain.Session) error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(sessionKey(session.ID))
		if err == nil {
			return fmt.Errorf("session %s: %w", session.ID, store.ErrAlreadyExists)
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check session exists: %w", err)
		}
		return writeSession(txn, session)
	})
}

// GetSession returns a live session by ID.
func (s *Store) GetSession(_ context.Context, id string) (*domain.Session, error) {
	var session *domain.Session
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		session, err = readSession(txn, id)
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsExpired() {
		return nil, store.ErrSessionExpired
	}
	return session, nil
}

// TouchSession updates LastSeenAt, keeping the original expiry.
func (s *Store) TouchSession(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		session, err := readSession(txn, id)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrSessionNotFound
			}
			return err
		}
		if session.IsExpired() {
			return store.ErrSessionExpired
		}
		session.LastSeenAt = time.Now().UTC()
		return writeSession(txn, session)
	})
}

// DeleteSession removes a session. Deleting an unknown session is not an error.
func (s *Store) DeleteSession(_ context.Context, id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return deleteSession(txn, id)
	})
}

func deleteSession(txn *badger.Txn, id string) error {
	session, err := readSession(txn, id)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return fmt.Errorf("get session for deletion: %w", err)
	}

	if err := txn.Delete(sessionKey(id)); err != nil {
		return err
	}
	return txn.Delete(userIndexKey(session.UserID, id))
}

// userSessionIDs returns the ids in the user's index.
func userSessionIDs(txn *badger.Txn, userID string) []string {
	prefix := []byte(sessionByUserPrefix + userID + ":")

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	opts.PrefetchValues = false

	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []string
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		key := string(it.Item().Key())
		ids = append(ids, strings.TrimPrefix(key, string(prefix)))
	}
	return ids
}

// ListUserSessions returns the user's live sessions.
func (s *Store) ListUserSessions(_ context.Context, userID string) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range userSessionIDs(txn, userID) {
			session, err := readSession(txn, id)
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			if session.IsExpired() {
				continue
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list user sessions: %w", err)
	}

	return sessions, nil
}

// DeleteUserSessions removes every session belonging to the user.
// Used when a user is banned or their password changes.
func (s *Store) DeleteUserSessions(_ context.Context, userID string) (int, error) {
	removed := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		removed = 0
		for _, id := range userSessionIDs(txn, userID) {
			if err := txn.Delete(sessionKey(id)); err != nil {
				return err
			}
			if err := txn.Delete(userIndexKey(userID, id)); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete user sessions: %w", err)
	}
	return removed, nil
}

// DeleteExpiredSessions removes sessions that have passed their expiry but not yet
// aged out of Badger.
func (s *Store) DeleteExpiredSessions(_ context.Context) (int, error) {
	prefix := []byte(sessionPrefix)
	var expired []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var session domain.Session
				if err := json.Unmarshal(val, &session); err != nil {
					//nolint:nilerr // skip malformed records
					return nil
				}
				if session.IsExpired() {
					expired = append(expired, session.ID)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("find expired sessions: %w", err)
	}

	for _, id := range expired {
		if err := s.db.Update(func(txn *badger.Txn) error { return deleteSession(txn, id) }); err != nil {
			s.logger.Warn("failed to delete expired session", "session_id", id, "error", err)
		}
	}

	return len(expired), nil
}
