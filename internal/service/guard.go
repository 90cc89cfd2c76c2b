package service

import (
	"github.com/dtroode/lobby-server/internal/apierrors"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
)

// authorize admits callers with an identity and a verified email.
func authorize(caller model.Caller) error {
	if caller.ID == "" {
		return apierrors.NewErrUnauthenticated()
	}
	if !caller.EmailVerified {
		return apierrors.NewErrEmailNotVerified()
	}
	return nil
}

// guard passes API errors through and hides everything else behind an internal error.
func guard(log *logger.Logger, component string, caller model.Caller, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apierrors.As(err); ok {
		return err
	}

	log.Error(component+" service: unexpected error",
		"uid", caller.ID,
		"error", err.Error())
	return apierrors.NewErrInternalServerError(err)
}
