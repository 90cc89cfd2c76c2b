package middleware

import (
	"context"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lobby-server/internal/apierrors"
	"github.com/dtroode/lobby-server/internal/logger"
)

// Recovery turns handler panics into internal errors.
type Recovery struct {
	logger *logger.Logger
}

// NewRecovery creates a new Recovery middleware.
func NewRecovery(logger *logger.Logger) *Recovery {
	return &Recovery{logger: logger}
}

// Option returns the recovery handler option for the recovery interceptors.
func (r *Recovery) Option() recovery.Option {
	return recovery.WithRecoveryHandlerContext(r.handle)
}

func (r *Recovery) handle(_ context.Context, p any) error {
	r.logger.Error("gRPC handler panicked",
		"panic", p,
		"stack", string(debug.Stack()))
	return status.Error(codes.Internal, apierrors.NewErrInternalServerError(nil).Message)
}
