package handler

import (
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lobby-server/internal/apierrors"
)

func handleError(err error) error {
	if apiErr, ok := apierrors.As(err); ok {
		return status.Error(apiErr.GRPCCode, apiErr.Message)
	}
	return status.Error(codes.Internal, apierrors.NewErrInternalServerError(err).Message)
}

// failureLevel keeps expected caller-facing outcomes out of the error log.
func failureLevel(err error) slog.Level {
	if apiErr, ok := apierrors.As(err); ok && apiErr.Kind != apierrors.KindInternal {
		return slog.LevelInfo
	}
	return slog.LevelError
}
