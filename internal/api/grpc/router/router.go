package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/lobby-server/internal/api/grpc/handler"
	"github.com/dtroode/lobby-server/internal/api/grpc/lobbyv1"
	"github.com/dtroode/lobby-server/internal/api/grpc/middleware"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
)

// Router represents a gRPC router for lobby operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	identityService handler.IdentityService
	queueService    handler.QueueService
	tokenParser     middleware.TokenParser
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	identityService handler.IdentityService,
	queueService handler.QueueService,
	tokenParser middleware.TokenParser,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		identityService: identityService,
		queueService:    queueService,
		tokenParser:     tokenParser,
		contextManager:  contextManager,
		logger:          logger,
	}
}

// authRequired exempts the health service from authentication.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	return !strings.HasPrefix(c.FullMethod(), "/"+healthpb.Health_ServiceDesc.ServiceName+"/")
}

// Register registers all gRPC services and middleware.
// It sets up the gRPC server with tracing, request logging, panic recovery
// and authentication interceptors.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoverer := middleware.NewRecovery(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenParser, r.contextManager, r.logger)

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverer.Option()),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverer.Option()),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)
	r.registerLobbyRoutes(s)
	r.registerHealth(s)

	return s
}

func (r *Router) registerLobbyRoutes(server *grpc.Server) {
	lobbyHandler := handler.NewLobby(r.identityService, r.queueService, r.contextManager, r.logger)
	lobbyv1.RegisterLobbyServer(server, lobbyHandler)
}

func (r *Router) registerHealth(server *grpc.Server) {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(lobbyv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)
}
