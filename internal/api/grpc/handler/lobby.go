package handler

import (
	"context"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/lobby-server/internal/api/grpc/lobbyv1"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
)

// IdentityService defines identity reservation operations.
type IdentityService interface {
	ReserveIdentity(ctx context.Context, caller model.Caller, rawUsername any) (model.Reservation, error)
}

// QueueService defines matchmaking queue operations.
type QueueService interface {
	JoinQueue(ctx context.Context, caller model.Caller) error
	LeaveQueue(ctx context.Context, caller model.Caller) error
}

// Lobby handles gRPC endpoints of lobby.v1.Lobby.
type Lobby struct {
	lobbyv1.UnimplementedLobbyServer
	identityService IdentityService
	queueService    QueueService
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// NewLobby creates a new Lobby handler.
func NewLobby(identityService IdentityService, queueService QueueService, contextManager model.ContextManager, logger *logger.Logger) *Lobby {
	return &Lobby{
		identityService: identityService,
		queueService:    queueService,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// ReserveIdentity claims the requested username for the caller.
func (h *Lobby) ReserveIdentity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	caller, _ := h.contextManager.GetCallerFromContext(ctx)

	var rawUsername any
	if field, ok := req.GetFields()["username"]; ok {
		rawUsername = field.AsInterface()
	}

	h.logger.Debug("Lobby handler: processing reserve identity request",
		"uid", caller.ID)

	reservation, err := h.identityService.ReserveIdentity(ctx, caller, rawUsername)
	if err != nil {
		h.logger.Log(ctx, failureLevel(err), "Lobby handler: reserve identity failed",
			"uid", caller.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	resp, err := structpb.NewStruct(map[string]any{
		"success":  true,
		"username": reservation.Username,
		"uid":      reservation.UID,
	})
	if err != nil {
		return nil, handleError(err)
	}
	return resp, nil
}

// JoinQueue admits the caller to the matchmaking queue.
func (h *Lobby) JoinQueue(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	caller, _ := h.contextManager.GetCallerFromContext(ctx)

	h.logger.Debug("Lobby handler: processing join queue request",
		"uid", caller.ID)

	if err := h.queueService.JoinQueue(ctx, caller); err != nil {
		h.logger.Log(ctx, failureLevel(err), "Lobby handler: join queue failed",
			"uid", caller.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return success(), nil
}

// LeaveQueue removes the caller from the matchmaking queue.
func (h *Lobby) LeaveQueue(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	caller, _ := h.contextManager.GetCallerFromContext(ctx)

	h.logger.Debug("Lobby handler: processing leave queue request",
		"uid", caller.ID)

	if err := h.queueService.LeaveQueue(ctx, caller); err != nil {
		h.logger.Log(ctx, failureLevel(err), "Lobby handler: leave queue failed",
			"uid", caller.ID,
			"error", err.Error())
		return nil, handleError(err)
	}

	return success(), nil
}

func success() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"success": structpb.NewBoolValue(true),
	}}
}
