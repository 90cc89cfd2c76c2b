package pebblestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/dtroode/lobby-server/internal/model"
)

var _ model.IdentityStore = (*IdentityStore)(nil)

// IdentityStore stores users and username reservations.
type IdentityStore struct {
	db *DB
}

func NewIdentityStore(db *DB) *IdentityStore {
	return &IdentityStore{db: db}
}

func (s *IdentityStore) GetUser(_ context.Context, id string) (model.User, error) {
	return getUser(s.db.inner, id)
}

func (s *IdentityStore) GetUsername(_ context.Context, username string) (model.UsernameReservation, error) {
	return getUsername(s.db.inner, username)
}

// RunInTx stages fn's writes in an indexed batch and commits them at once.
func (s *IdentityStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx model.IdentityTx) error) error {
	s.db.txMu.Lock()
	defer s.db.txMu.Unlock()

	batch := s.db.inner.NewIndexedBatch()
	defer batch.Close()

	if err := fn(ctx, &identityTx{db: s.db, batch: batch}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := batch.Commit(s.db.writeOpts); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type identityTx struct {
	db    *DB
	batch *pebble.Batch
	now   time.Time
}

func (t *identityTx) Now(context.Context) (time.Time, error) {
	if t.now.IsZero() {
		t.now = t.db.timestamp()
	}
	return t.now, nil
}

func (t *identityTx) GetUser(_ context.Context, id string) (model.User, error) {
	return getUser(t.batch, id)
}

func (t *identityTx) GetUsername(_ context.Context, username string) (model.UsernameReservation, error) {
	return getUsername(t.batch, username)
}

func (t *identityTx) CreateUsername(_ context.Context, reservation model.UsernameReservation) error {
	key := usernameKey(reservation.Username)
	if err := t.absent(key); err != nil {
		return err
	}
	if err := store(t.batch, key, reservation, nil); err != nil {
		return fmt.Errorf("failed to create username reservation: %w", err)
	}
	return nil
}

func (t *identityTx) CreateUser(_ context.Context, user model.User) error {
	key := userKey(user.ID)
	if err := t.absent(key); err != nil {
		return err
	}
	if err := store(t.batch, key, user, nil); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (t *identityTx) absent(key string) error {
	_, closer, err := t.batch.Get([]byte(key))
	if err == nil {
		closer.Close()
		return model.ErrAlreadyExists
	}
	if errors.Is(err, pebble.ErrNotFound) {
		return nil
	}
	return fmt.Errorf("failed to read %s: %w", key, err)
}

func getUser(r pebble.Reader, id string) (model.User, error) {
	var user model.User
	if err := load(r, userKey(id), &user); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	user.ID = id
	return user, nil
}

func getUsername(r pebble.Reader, username string) (model.UsernameReservation, error) {
	var reservation model.UsernameReservation
	if err := load(r, usernameKey(username), &reservation); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UsernameReservation{}, err
		}
		return model.UsernameReservation{}, fmt.Errorf("failed to get username reservation: %w", err)
	}
	reservation.Username = username
	return reservation, nil
}
