package model

import "context"

// ContextManager stores and loads the authenticated caller on a request context.
type ContextManager interface {
	SetCallerToContext(ctx context.Context, caller Caller) context.Context
	GetCallerFromContext(ctx context.Context) (Caller, bool)
}
