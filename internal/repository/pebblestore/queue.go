package pebblestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/lobby-server/internal/model"
)

var _ model.QueueStore = (*QueueStore)(nil)

// QueueStore stores matchmaking queue entries.
type QueueStore struct {
	db *DB
}

func NewQueueStore(db *DB) *QueueStore {
	return &QueueStore{db: db}
}

func (s *QueueStore) Get(_ context.Context, userID string) (model.QueueEntry, error) {
	var entry model.QueueEntry
	if err := load(s.db.inner, queueKey(userID), &entry); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.QueueEntry{}, err
		}
		return model.QueueEntry{}, fmt.Errorf("failed to get queue entry: %w", err)
	}
	entry.UserID = userID
	return entry, nil
}

func (s *QueueStore) Put(ctx context.Context, entry model.QueueEntry) (model.QueueEntry, error) {
	if err := ctx.Err(); err != nil {
		return model.QueueEntry{}, err
	}

	entry.CreatedAt = s.db.timestamp()
	if err := store(s.db.inner, queueKey(entry.UserID), entry, s.db.writeOpts); err != nil {
		return model.QueueEntry{}, fmt.Errorf("failed to put queue entry: %w", err)
	}
	return entry, nil
}

func (s *QueueStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.inner.Delete([]byte(queueKey(userID)), s.db.writeOpts); err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}
	return nil
}
