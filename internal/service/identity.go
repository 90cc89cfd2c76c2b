package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dtroode/lobby-server/internal/apierrors"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
	"github.com/dtroode/lobby-server/internal/retry"
)

var usernamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]{7,14}$`)

// ValidUsername reports whether username satisfies the username rules:
// 8 to 15 characters of lowercase letters, digits and underscores, starting with a letter.
func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// Transaction outcomes that end the retry loop.
var (
	errUsernameTaken = errors.New("username confirmed taken")
	errUserPresent   = errors.New("user identity already present")
)

// IdentityConfig holds the reservation retry budget.
type IdentityConfig struct {
	ReserveAttempts int
}

// Identity reserves usernames and creates user identities.
type Identity struct {
	store  model.IdentityStore
	config IdentityConfig
	logger *logger.Logger
}

func NewIdentity(store model.IdentityStore, config IdentityConfig, logger *logger.Logger) *Identity {
	return &Identity{
		store:  store,
		config: config,
		logger: logger.With("component", "identity"),
	}
}

// ReserveIdentity claims rawUsername for the caller and creates their identity.
// The username reservation and the identity are written in one transaction.
func (s *Identity) ReserveIdentity(ctx context.Context, caller model.Caller, rawUsername any) (model.Reservation, error) {
	reservation, err := s.reserve(ctx, caller, rawUsername)
	if err != nil {
		return model.Reservation{}, guard(s.logger, "Identity", caller, err)
	}
	return reservation, nil
}

func (s *Identity) reserve(ctx context.Context, caller model.Caller, rawUsername any) (model.Reservation, error) {
	if err := authorize(caller); err != nil {
		s.logger.Info("Identity service: caller rejected",
			"uid", caller.ID,
			"error", err.Error())
		return model.Reservation{}, err
	}

	raw, ok := rawUsername.(string)
	if !ok {
		s.logger.Info("Identity service: username is not a string",
			"uid", caller.ID)
		return model.Reservation{}, apierrors.NewErrUsernameRules()
	}
	username := strings.TrimSpace(raw)
	if !ValidUsername(username) {
		s.logger.Info("Identity service: username rules failed",
			"uid", caller.ID,
			"username", username)
		return model.Reservation{}, apierrors.NewErrUsernameRules()
	}

	s.logger.Debug("Identity service: starting reservation",
		"uid", caller.ID,
		"username", username)

	_, err := s.store.GetUser(ctx, caller.ID)
	switch {
	case err == nil:
		s.logger.Info("Identity service: user already exists",
			"uid", caller.ID)
		return model.Reservation{}, apierrors.NewErrUserExists()
	case !errors.Is(err, model.ErrNotFound):
		return model.Reservation{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	policy := retry.Policy{Attempts: s.config.ReserveAttempts}
	attempts, err := retry.Do(ctx, policy, classifyReserve, func(ctx context.Context, attempt int) error {
		err := s.store.RunInTx(ctx, func(ctx context.Context, tx model.IdentityTx) error {
			return s.reserveInTx(ctx, tx, caller, username)
		})
		if err != nil {
			s.logger.Warn("Identity service: reservation attempt failed",
				"uid", caller.ID,
				"username", username,
				"attempt", attempt,
				"error", err.Error())
		}
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, errUsernameTaken):
		s.logger.Info("Identity service: username already taken",
			"uid", caller.ID,
			"username", username)
		return model.Reservation{}, apierrors.NewErrUsernameTaken(username)
	case errors.Is(err, errUserPresent):
		s.logger.Info("Identity service: user created concurrently",
			"uid", caller.ID)
		return model.Reservation{}, apierrors.NewErrUserExists()
	case errors.Is(err, retry.ErrExhausted):
		s.logger.Error("Identity service: reservation attempts exhausted",
			"uid", caller.ID,
			"username", username,
			"attempts", attempts,
			"error", err.Error())
		return model.Reservation{}, apierrors.NewErrReservationExhausted(err)
	default:
		return model.Reservation{}, fmt.Errorf("failed to reserve username: %w", err)
	}

	s.logger.Info("Identity service: reservation completed",
		"uid", caller.ID,
		"username", username,
		"attempts", attempts)

	return model.Reservation{UID: caller.ID, Username: username}, nil
}

func (s *Identity) reserveInTx(ctx context.Context, tx model.IdentityTx, caller model.Caller, username string) error {
	if _, err := tx.GetUser(ctx, caller.ID); err == nil {
		return errUserPresent
	} else if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if _, err := tx.GetUsername(ctx, username); err == nil {
		return errUsernameTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to get username: %w", err)
	}

	now, err := tx.Now(ctx)
	if err != nil {
		return fmt.Errorf("failed to get server time: %w", err)
	}

	err = tx.CreateUsername(ctx, model.UsernameReservation{
		Username:  username,
		UserID:    caller.ID,
		CreatedAt: now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return errUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create username reservation: %w", err)
	}

	err = tx.CreateUser(ctx, model.User{
		ID:        caller.ID,
		Username:  username,
		Email:     caller.Email,
		CreatedAt: now,
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		return errUserPresent
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// classifyReserve retries every transaction failure except a confirmed conflict.
func classifyReserve(err error) retry.Verdict {
	switch {
	case errors.Is(err, errUsernameTaken), errors.Is(err, errUserPresent):
		return retry.Stop
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return retry.Stop
	default:
		return retry.Again
	}
}
