package model

import (
	"context"
	"time"
)

// QueueStatusWaiting is the only status a queue entry can hold.
const QueueStatusWaiting = "waiting"

// QueueStore defines persistence operations for the matchmaking queue.
type QueueStore interface {
	Get(ctx context.Context, userID string) (QueueEntry, error)
	// Put unconditionally writes the entry stamped with the store's time.
	Put(ctx context.Context, entry QueueEntry) (QueueEntry, error)
	Delete(ctx context.Context, userID string) error
}

// QueueEntry marks a caller as waiting to be matched.
type QueueEntry struct {
	UserID    string    `json:"-"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// PresenceChecker reports whether a caller currently holds a presence marker.
type PresenceChecker interface {
	IsOnline(ctx context.Context, userID string) (bool, error)
}
