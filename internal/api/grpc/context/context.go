package context

import (
	"context"
	"strconv"

	"google.golang.org/grpc/metadata"

	"github.com/dtroode/lobby-server/internal/model"
)

// Metadata keys used to store the authenticated caller in gRPC context.
const (
	callerIDKey            string = "caller-id"
	callerEmailKey         string = "caller-email"
	callerEmailVerifiedKey string = "caller-email-verified"
)

// Manager represents a gRPC context manager for caller operations.
// It stores the caller resolved by the authorization gate in incoming metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetCallerToContext sets the caller in the gRPC context metadata.
// Values already present under the caller keys are replaced, so a client
// cannot smuggle its own identity past the authorization gate.
func (m *Manager) SetCallerToContext(ctx context.Context, caller model.Caller) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	} else {
		md = md.Copy()
	}

	md.Set(callerIDKey, caller.ID)
	md.Set(callerEmailKey, caller.Email)
	md.Set(callerEmailVerifiedKey, strconv.FormatBool(caller.EmailVerified))

	return metadata.NewIncomingContext(ctx, md)
}

// GetCallerFromContext retrieves the caller from gRPC context metadata.
// It reports false when no caller ID is present.
func (m *Manager) GetCallerFromContext(ctx context.Context) (model.Caller, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return model.Caller{}, false
	}

	id := first(md, callerIDKey)
	if id == "" {
		return model.Caller{}, false
	}

	verified, err := strconv.ParseBool(first(md, callerEmailVerifiedKey))
	if err != nil {
		verified = false
	}

	return model.Caller{
		ID:            id,
		Email:         first(md, callerEmailKey),
		EmailVerified: verified,
	}, true
}

func first(md metadata.MD, key string) string {
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
