package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func classifyTest(err error) Verdict {
	if errors.Is(err, errTransient) {
		return Again
	}
	return Stop
}

func TestDo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		policy       Policy
		results      []error
		wantAttempts int
		wantErr      error
		wantExhaust  bool
	}{
		{
			name:         "first attempt succeeds",
			policy:       Policy{Attempts: 3},
			results:      []error{nil},
			wantAttempts: 1,
		},
		{
			name:         "succeeds after transient failures",
			policy:       Policy{Attempts: 3},
			results:      []error{errTransient, errTransient, nil},
			wantAttempts: 3,
		},
		{
			name:         "stop verdict returns immediately",
			policy:       Policy{Attempts: 10},
			results:      []error{errFatal},
			wantAttempts: 1,
			wantErr:      errFatal,
		},
		{
			name:         "budget exhausted",
			policy:       Policy{Attempts: 3},
			results:      []error{errTransient, errTransient, errTransient},
			wantAttempts: 3,
			wantErr:      errTransient,
			wantExhaust:  true,
		},
		{
			name:         "zero budget still makes one attempt",
			policy:       Policy{},
			results:      []error{errTransient},
			wantAttempts: 1,
			wantErr:      errTransient,
			wantExhaust:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			attempts, err := Do(context.Background(), tt.policy, classifyTest, func(_ context.Context, attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				return tt.results[attempt-1]
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			assert.Equal(t, tt.wantAttempts, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantExhaust, errors.Is(err, ErrExhausted))
		})
	}
}

func TestDo_DelayBetweenAttempts(t *testing.T) {
	t.Parallel()

	delay := 20 * time.Millisecond
	var stamps []time.Time
	start := time.Now()

	attempts, err := Do(context.Background(), Policy{Attempts: 4, Delay: delay}, Always, func(context.Context, int) error {
		stamps = append(stamps, time.Now())
		return errTransient
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
	require.Len(t, stamps, 4)
	assert.Less(t, stamps[0].Sub(start), delay, "first attempt must not wait")
	for i := 1; i < len(stamps); i++ {
		assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), delay)
	}
}

func TestDo_ContextCancelledDuringSleep(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	calls := 0
	attempts, err := Do(ctx, Policy{Attempts: 10, Delay: time.Second}, Always, func(context.Context, int) error {
		calls++
		return errTransient
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.ErrorIs(t, err, errTransient)
	assert.False(t, errors.Is(err, ErrExhausted))
}

func TestDo_ContextAlreadyDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts, err := Do(ctx, Policy{Attempts: 3}, Always, func(context.Context, int) error {
		t.Fatal("fn must not run on a done context")
		return nil
	})

	assert.Equal(t, 0, attempts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleep(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Sleep(context.Background(), 0))
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "stop", Stop.String())
	assert.Equal(t, "again", Again.String())
	assert.Equal(t, "unknown", Verdict(42).String())
}
