package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/lobby-server/internal/model"
)

var _ model.QueueStore = (*QueueRepository)(nil)

// QueueRepository stores matchmaking queue entries.
type QueueRepository struct {
	db *Connection
}

func NewQueueRepository(db *Connection) *QueueRepository {
	return &QueueRepository{db: db}
}

func (r *QueueRepository) Get(ctx context.Context, userID string) (model.QueueEntry, error) {
	const query = `SELECT user_id, status, created_at FROM queue WHERE user_id = $1`

	var entry model.QueueEntry
	err := r.db.QueryRow(ctx, query, userID).Scan(&entry.UserID, &entry.Status, &entry.CreatedAt)
	if err != nil {
		err = mapError(err)
		if errors.Is(err, model.ErrNotFound) {
			return model.QueueEntry{}, err
		}
		return model.QueueEntry{}, fmt.Errorf("failed to get queue entry: %w", err)
	}

	return entry, nil
}

// Put overwrites any entry for the user and stamps it with the database time.
func (r *QueueRepository) Put(ctx context.Context, entry model.QueueEntry) (model.QueueEntry, error) {
	const query = `
        INSERT INTO queue (user_id, status, created_at)
        VALUES ($1, $2, now())
        ON CONFLICT (user_id) DO UPDATE
        SET status = EXCLUDED.status, created_at = EXCLUDED.created_at
        RETURNING user_id, status, created_at
    `

	var saved model.QueueEntry
	err := r.db.QueryRow(ctx, query, entry.UserID, entry.Status).Scan(&saved.UserID, &saved.Status, &saved.CreatedAt)
	if err != nil {
		return model.QueueEntry{}, fmt.Errorf("failed to put queue entry: %w", mapError(err))
	}

	return saved, nil
}

// Delete removes the entry. Deleting an absent entry is not an error.
func (r *QueueRepository) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM queue WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", mapError(err))
	}
	return nil
}
