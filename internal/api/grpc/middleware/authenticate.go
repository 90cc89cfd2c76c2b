package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/lobby-server/internal/apierrors"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
)

// TokenParser resolves the caller from a bearer token.
type TokenParser interface {
	ParseAccessToken(token string) (model.Caller, error)
}

// Authenticate validates bearer tokens and injects the caller into context.
type Authenticate struct {
	tokenParser    TokenParser
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenParser TokenParser, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenParser: tokenParser, contextManager: contextManager, logger: logger}
}

// AuthFunc parses the authorization header, validates the token and returns a context carrying the caller.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeaders[0], "Bearer "))
		}
	}

	caller, authErr := m.authenticateCaller(tokenString)
	if authErr != nil {
		m.logger.Debug("Authenticate middleware: request rejected",
			"error", authErr.Error())
		return nil, status.Error(authErr.GRPCCode, authErr.Message)
	}

	return m.contextManager.SetCallerToContext(ctx, caller), nil
}

func (m *Authenticate) authenticateCaller(tokenString string) (model.Caller, *apierrors.APIError) {
	if tokenString == "" {
		return model.Caller{}, apierrors.NewErrMissingAuthorizationToken()
	}

	caller, err := m.tokenParser.ParseAccessToken(tokenString)
	if err != nil {
		return model.Caller{}, apierrors.NewErrInvalidAuthorizationToken()
	}

	if caller.ID == "" {
		return model.Caller{}, apierrors.NewErrInvalidAuthorizationToken()
	}

	return caller, nil
}
