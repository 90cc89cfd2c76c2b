package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lobby-server/internal/apierrors"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
	"github.com/dtroode/lobby-server/internal/retry"
)

// QueueConfig holds the leave retry budget.
type QueueConfig struct {
	LeaveAttempts   int
	LeaveRetryDelay time.Duration
}

// Queue admits callers to and removes them from the matchmaking queue.
type Queue struct {
	store    model.QueueStore
	presence model.PresenceChecker
	config   QueueConfig
	logger   *logger.Logger
}

func NewQueue(store model.QueueStore, presence model.PresenceChecker, config QueueConfig, logger *logger.Logger) *Queue {
	return &Queue{
		store:    store,
		presence: presence,
		config:   config,
		logger:   logger.With("component", "queue"),
	}
}

// JoinQueue puts an online caller into the queue.
func (s *Queue) JoinQueue(ctx context.Context, caller model.Caller) error {
	return guard(s.logger, "Queue", caller, s.join(ctx, caller))
}

func (s *Queue) join(ctx context.Context, caller model.Caller) error {
	if err := authorize(caller); err != nil {
		s.logger.Info("Queue service: caller rejected",
			"uid", caller.ID,
			"error", err.Error())
		return err
	}

	online, err := s.presence.IsOnline(ctx, caller.ID)
	if err != nil {
		return fmt.Errorf("failed to check presence: %w", err)
	}
	if !online {
		s.logger.Info("Queue service: caller is not online",
			"uid", caller.ID)
		return apierrors.NewErrUserOffline()
	}

	_, err = s.store.Get(ctx, caller.ID)
	switch {
	case err == nil:
		s.logger.Info("Queue service: caller already waiting",
			"uid", caller.ID)
		return apierrors.NewErrAlreadyWaiting()
	case !errors.Is(err, model.ErrNotFound):
		return fmt.Errorf("failed to get queue entry: %w", err)
	}

	entry, err := s.store.Put(ctx, model.QueueEntry{
		UserID: caller.ID,
		Status: model.QueueStatusWaiting,
	})
	if err != nil {
		return fmt.Errorf("failed to put queue entry: %w", err)
	}

	s.logger.Info("Queue service: caller joined queue",
		"uid", caller.ID,
		"created_at", entry.CreatedAt)

	return nil
}

// LeaveQueue removes the caller's queue entry. Store failures are logged and
// never reported; only authorization errors reach the caller.
func (s *Queue) LeaveQueue(ctx context.Context, caller model.Caller) error {
	if err := authorize(caller); err != nil {
		s.logger.Info("Queue service: caller rejected",
			"uid", caller.ID,
			"error", err.Error())
		return err
	}

	policy := retry.Policy{
		Attempts: s.config.LeaveAttempts,
		Delay:    s.config.LeaveRetryDelay,
	}
	attempts, err := retry.Do(ctx, policy, ClassifyLeave, func(ctx context.Context, attempt int) error {
		err := s.removeEntry(ctx, caller.ID)
		if err != nil {
			s.logger.Warn("Queue service: leave attempt failed",
				"uid", caller.ID,
				"attempt", attempt,
				"verdict", ClassifyLeave(err).String(),
				"error", err.Error())
		}
		return err
	})
	if err != nil {
		s.logger.Error("Queue service: leave gave up",
			"uid", caller.ID,
			"attempts", attempts,
			"error", err.Error())
		return nil
	}

	s.logger.Info("Queue service: caller left queue",
		"uid", caller.ID,
		"attempts", attempts)

	return nil
}

func (s *Queue) removeEntry(ctx context.Context, userID string) error {
	_, err := s.store.Get(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get queue entry: %w", err)
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}
	return nil
}

var contendedCodes = map[codes.Code]bool{
	codes.Aborted:            true,
	codes.FailedPrecondition: true,
	codes.Unavailable:        true,
}

// contendedText matches whole words only, so "blocked" or "clock" do not count.
var contendedText = regexp.MustCompile(`(?i)\b(concurren\w*|contention|contended|(dead)?locks?|locked|locking)\b`)

// ClassifyLeave retries failures caused by contention or a briefly unavailable
// store and stops on anything else.
func ClassifyLeave(err error) retry.Verdict {
	if err == nil {
		return retry.Stop
	}
	if errors.Is(err, model.ErrContention) || errors.Is(err, model.ErrUnavailable) {
		return retry.Again
	}
	if st, ok := status.FromError(err); ok && contendedCodes[st.Code()] {
		return retry.Again
	}

	if contendedText.MatchString(err.Error()) {
		return retry.Again
	}
	return retry.Stop
}
