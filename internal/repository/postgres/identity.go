package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/lobby-server/internal/model"
)

var _ model.IdentityStore = (*IdentityRepository)(nil)

// IdentityRepository stores users and username reservations.
type IdentityRepository struct {
	db *Connection
}

func NewIdentityRepository(db *Connection) *IdentityRepository {
	return &IdentityRepository{
		db: db,
	}
}

func (r *IdentityRepository) GetUser(ctx context.Context, id string) (model.User, error) {
	return getUser(ctx, r.db, id)
}

func (r *IdentityRepository) GetUsername(ctx context.Context, username string) (model.UsernameReservation, error) {
	return getUsername(ctx, r.db, username)
}

// RunInTx runs fn inside a SERIALIZABLE transaction. Serialization failures are
// reported as model.ErrContention.
func (r *IdentityRepository) RunInTx(ctx context.Context, fn func(ctx context.Context, tx model.IdentityTx) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", mapError(err))
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(ctx, &identityTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", mapError(err))
	}

	return nil
}

type identityTx struct {
	tx pgx.Tx
}

// Now returns the transaction start time, identical for every statement of the transaction.
func (t *identityTx) Now(ctx context.Context) (time.Time, error) {
	var now time.Time
	if err := t.tx.QueryRow(ctx, `SELECT now()`).Scan(&now); err != nil {
		return time.Time{}, fmt.Errorf("failed to read transaction time: %w", mapError(err))
	}
	return now.UTC(), nil
}

func (t *identityTx) GetUser(ctx context.Context, id string) (model.User, error) {
	return getUser(ctx, t.tx, id)
}

func (t *identityTx) GetUsername(ctx context.Context, username string) (model.UsernameReservation, error) {
	return getUsername(ctx, t.tx, username)
}

func (t *identityTx) CreateUsername(ctx context.Context, reservation model.UsernameReservation) error {
	const query = `
        INSERT INTO usernames (username, user_id, created_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (username) DO NOTHING
    `

	cmd, err := t.tx.Exec(ctx, query, reservation.Username, reservation.UserID, reservation.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create username reservation: %w", mapError(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrAlreadyExists
	}
	return nil
}

func (t *identityTx) CreateUser(ctx context.Context, user model.User) error {
	const query = `
        INSERT INTO users (id, username, email, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `

	cmd, err := t.tx.Exec(ctx, query, user.ID, user.Username, user.Email, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapError(err))
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrAlreadyExists
	}
	return nil
}

func getUser(ctx context.Context, q querier, id string) (model.User, error) {
	const query = `SELECT id, username, email, created_at FROM users WHERE id = $1`

	var user model.User
	err := q.QueryRow(ctx, query, id).Scan(&user.ID, &user.Username, &user.Email, &user.CreatedAt)
	if err != nil {
		err = mapError(err)
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func getUsername(ctx context.Context, q querier, username string) (model.UsernameReservation, error) {
	const query = `SELECT username, user_id, created_at FROM usernames WHERE username = $1`

	var reservation model.UsernameReservation
	err := q.QueryRow(ctx, query, username).Scan(&reservation.Username, &reservation.UserID, &reservation.CreatedAt)
	if err != nil {
		err = mapError(err)
		if errors.Is(err, model.ErrNotFound) {
			return model.UsernameReservation{}, err
		}
		return model.UsernameReservation{}, fmt.Errorf("failed to get username reservation: %w", err)
	}

	return reservation, nil
}
