package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/lobby-server/internal/apierrors"
	"github.com/dtroode/lobby-server/internal/mocks"
	"github.com/dtroode/lobby-server/internal/model"
	"github.com/dtroode/lobby-server/internal/repository/pebblestore"
	"github.com/dtroode/lobby-server/internal/testutil"
)

type lobby struct {
	identity *Identity
	queue    *Queue
	users    *pebblestore.IdentityStore
	entries  *pebblestore.QueueStore
}

func newLobby(t *testing.T, presence model.PresenceChecker) *lobby {
	t.Helper()

	db, err := pebblestore.Open(pebblestore.Options{DataDir: "lobby", FS: vfs.NewMem()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	lg := testutil.MakeNoopLogger()
	users := pebblestore.NewIdentityStore(db)
	entries := pebblestore.NewQueueStore(db)

	return &lobby{
		identity: NewIdentity(users, IdentityConfig{ReserveAttempts: 3}, lg),
		queue:    NewQueue(entries, presence, testQueueConfig, lg),
		users:    users,
		entries:  entries,
	}
}

func caller(id string) model.Caller {
	return model.Caller{ID: id, Email: id + "@example.com", EmailVerified: true}
}

func TestLobby_Scenario(t *testing.T) {
	ctx := context.Background()
	presence := mocks.NewPresenceChecker(t)
	presence.On("IsOnline", mock.Anything, "caller-c").Return(true, nil)
	l := newLobby(t, presence)

	got, err := l.identity.ReserveIdentity(ctx, caller("caller-a"), "testuser123")
	require.NoError(t, err)
	assert.Equal(t, model.Reservation{UID: "caller-a", Username: "testuser123"}, got)

	_, err = l.identity.ReserveIdentity(ctx, caller("caller-a"), "testuser123")
	assertAPIError(t, err, apierrors.KindAlreadyExists, "user already exists")

	_, err = l.identity.ReserveIdentity(ctx, caller("caller-b"), "testuser123")
	assertAPIError(t, err, apierrors.KindAlreadyExists, "username testuser123 already taken")

	_, err = l.identity.ReserveIdentity(ctx, caller("caller-b"), "ab")
	assertAPIError(t, err, apierrors.KindInvalidArgument, "username rules failed")

	require.NoError(t, l.queue.JoinQueue(ctx, caller("caller-c")))
	err = l.queue.JoinQueue(ctx, caller("caller-c"))
	assertAPIError(t, err, apierrors.KindAlreadyExists, "User Already Waiting to be matched")

	require.NoError(t, l.queue.LeaveQueue(ctx, caller("caller-c")))
	_, err = l.entries.Get(ctx, "caller-c")
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, l.queue.LeaveQueue(ctx, caller("caller-c")))
}

func TestLobby_ReservationTimestampsAgree(t *testing.T) {
	ctx := context.Background()
	l := newLobby(t, mocks.NewPresenceChecker(t))

	_, err := l.identity.ReserveIdentity(ctx, caller("caller-a"), "player_one")
	require.NoError(t, err)

	user, err := l.users.GetUser(ctx, "caller-a")
	require.NoError(t, err)
	reservation, err := l.users.GetUsername(ctx, "player_one")
	require.NoError(t, err)

	assert.Equal(t, "caller-a", reservation.UserID)
	assert.Equal(t, "player_one", user.Username)
	assert.Equal(t, "caller-a@example.com", user.Email)
	assert.True(t, user.CreatedAt.Equal(reservation.CreatedAt))
}

func TestLobby_InvalidUsernameCreatesNothing(t *testing.T) {
	ctx := context.Background()
	l := newLobby(t, mocks.NewPresenceChecker(t))

	for _, name := range []string{"short", "Uppercase123", "9lives_cat", "_underscore", "has-dash12", "waytoolongusername"} {
		_, err := l.identity.ReserveIdentity(ctx, caller("caller-a"), name)
		assertAPIError(t, err, apierrors.KindInvalidArgument, "username rules failed")

		_, err = l.users.GetUsername(ctx, name)
		assert.ErrorIs(t, err, model.ErrNotFound)
	}

	_, err := l.users.GetUser(ctx, "caller-a")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestLobby_ConcurrentReservations(t *testing.T) {
	ctx := context.Background()
	l := newLobby(t, mocks.NewPresenceChecker(t))

	const contenders = 12
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
	)
	for i := 0; i < contenders; i++ {
		id := fmt.Sprintf("caller-%02d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.identity.ReserveIdentity(ctx, caller(id), "contested_name")
			if err == nil {
				mu.Lock()
				winners = append(winners, id)
				mu.Unlock()
				return
			}
			assert.True(t, apierrors.IsKind(err, apierrors.KindAlreadyExists), "unexpected error: %v", err)
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	reservation, err := l.users.GetUsername(ctx, "contested_name")
	require.NoError(t, err)
	assert.Equal(t, winners[0], reservation.UserID)
}

func TestLobby_OneIdentityPerCaller(t *testing.T) {
	ctx := context.Background()
	l := newLobby(t, mocks.NewPresenceChecker(t))

	names := []string{"first_choice", "second_choice", "third_choice"}
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, name := range names {
		name := name
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.identity.ReserveIdentity(ctx, caller("caller-a"), name); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			} else {
				assert.True(t, apierrors.IsKind(err, apierrors.KindAlreadyExists), "unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)

	user, err := l.users.GetUser(ctx, "caller-a")
	require.NoError(t, err)
	for _, name := range names {
		_, err := l.users.GetUsername(ctx, name)
		if name == user.Username {
			assert.NoError(t, err)
			continue
		}
		assert.ErrorIs(t, err, model.ErrNotFound, "losing transaction must leave no reservation for %s", name)
	}
}
