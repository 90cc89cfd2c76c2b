package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"

	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/model"
)

var _ model.Server = (*GRPCServer)(nil)

// GRPCServer runs the lobby gRPC server on a configured address.
type GRPCServer struct {
	server *grpc.Server
	addr   string
	logger *logger.Logger
}

// NewGRPCServer creates a GRPCServer with given server and address.
func NewGRPCServer(server *grpc.Server, addr string, logger *logger.Logger) *GRPCServer {
	return &GRPCServer{server: server, addr: addr, logger: logger}
}

// Start listens through the security layer and serves until Stop is called.
func (s *GRPCServer) Start(securityLayer model.SecurityLayer) error {
	listener, err := securityLayer.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.logger.Info("gRPC server listening", "address", listener.Addr().String())

	if err := s.server.Serve(listener); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

// Stop drains in-flight requests. If ctx expires first, remaining
// connections are closed immediately.
func (s *GRPCServer) Stop(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		s.logger.Warn("gRPC server graceful stop timed out, forcing stop")
		s.server.Stop()
		<-stopped
		return ctx.Err()
	}
}

// Address returns the configured listen address.
func (s *GRPCServer) Address() string {
	return s.addr
}
