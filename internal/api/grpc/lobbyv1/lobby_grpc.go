// Package lobbyv1 holds the gRPC service descriptor and client of lobby.v1.Lobby.
//
// The service uses only well-known protobuf types, so the descriptor is
// maintained by hand alongside lobby.proto.
package lobbyv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "lobby.v1.Lobby"

	Lobby_ReserveIdentity_FullMethodName = "/lobby.v1.Lobby/ReserveIdentity"
	Lobby_JoinQueue_FullMethodName       = "/lobby.v1.Lobby/JoinQueue"
	Lobby_LeaveQueue_FullMethodName      = "/lobby.v1.Lobby/LeaveQueue"
)

// LobbyClient is the client API for the Lobby service.
type LobbyClient interface {
	ReserveIdentity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	JoinQueue(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	LeaveQueue(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type lobbyClient struct {
	cc grpc.ClientConnInterface
}

func NewLobbyClient(cc grpc.ClientConnInterface) LobbyClient {
	return &lobbyClient{cc}
}

func (c *lobbyClient) ReserveIdentity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Lobby_ReserveIdentity_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *lobbyClient) JoinQueue(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Lobby_JoinQueue_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *lobbyClient) LeaveQueue(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Lobby_LeaveQueue_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// LobbyServer is the server API for the Lobby service.
// Implementations should embed UnimplementedLobbyServer.
type LobbyServer interface {
	ReserveIdentity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	JoinQueue(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	LeaveQueue(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedLobbyServer answers every method with codes.Unimplemented.
type UnimplementedLobbyServer struct{}

func (UnimplementedLobbyServer) ReserveIdentity(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ReserveIdentity not implemented")
}

func (UnimplementedLobbyServer) JoinQueue(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method JoinQueue not implemented")
}

func (UnimplementedLobbyServer) LeaveQueue(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method LeaveQueue not implemented")
}

func RegisterLobbyServer(s grpc.ServiceRegistrar, srv LobbyServer) {
	s.RegisterService(&Lobby_ServiceDesc, srv)
}

func _Lobby_ReserveIdentity_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LobbyServer).ReserveIdentity(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Lobby_ReserveIdentity_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LobbyServer).ReserveIdentity(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Lobby_JoinQueue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LobbyServer).JoinQueue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Lobby_JoinQueue_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LobbyServer).JoinQueue(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Lobby_LeaveQueue_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LobbyServer).LeaveQueue(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Lobby_LeaveQueue_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LobbyServer).LeaveQueue(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// Lobby_ServiceDesc is the grpc.ServiceDesc for the Lobby service.
var Lobby_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LobbyServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ReserveIdentity",
			Handler:    _Lobby_ReserveIdentity_Handler,
		},
		{
			MethodName: "JoinQueue",
			Handler:    _Lobby_JoinQueue_Handler,
		},
		{
			MethodName: "LeaveQueue",
			Handler:    _Lobby_LeaveQueue_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lobby.proto",
}
