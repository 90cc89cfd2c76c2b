package model

import (
	"context"
	"time"
)

// IdentityStore defines persistence operations for user identities and usernames.
type IdentityStore interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetUsername(ctx context.Context, username string) (UsernameReservation, error)
	// RunInTx applies fn atomically against the identity keyspaces.
	// Nothing fn wrote is visible unless fn returns nil and the commit succeeds.
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx IdentityTx) error) error
}

// IdentityTx is the view of the identity keyspaces inside a transaction.
type IdentityTx interface {
	// Now returns the store's timestamp for the transaction.
	Now(ctx context.Context) (time.Time, error)
	GetUser(ctx context.Context, id string) (User, error)
	GetUsername(ctx context.Context, username string) (UsernameReservation, error)
	// CreateUsername writes the reservation or fails with ErrAlreadyExists.
	CreateUsername(ctx context.Context, reservation UsernameReservation) error
	// CreateUser writes the identity or fails with ErrAlreadyExists.
	CreateUser(ctx context.Context, user User) error
}

// User is an immutable identity keyed by the caller ID.
type User struct {
	ID        string    `json:"-"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UsernameReservation binds a username to the identity owning it.
type UsernameReservation struct {
	Username  string    `json:"-"`
	UserID    string    `json:"uid"`
	CreatedAt time.Time `json:"createdAt"`
}

// Reservation is the result of a successful identity reservation.
type Reservation struct {
	UID      string
	Username string
}
