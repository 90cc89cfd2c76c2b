package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/dtroode/lobby-server/internal/apierrors"
	"github.com/dtroode/lobby-server/internal/logger"
	"github.com/dtroode/lobby-server/internal/mocks"
	"github.com/dtroode/lobby-server/internal/model"
	"github.com/dtroode/lobby-server/internal/testutil"
)

var testCaller = model.Caller{ID: "uid-1", Email: "a@example.com", EmailVerified: true}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func TestLobby_ReserveIdentity_Success(t *testing.T) {
	t.Parallel()

	identity := mocks.NewIdentityService(t)
	cm := mocks.NewContextManager(t)
	lg := testutil.MakeNoopLogger()

	cm.On("GetCallerFromContext", mock.Anything).Return(testCaller, true)
	identity.On("ReserveIdentity", mock.Anything, testCaller, "testuser123").
		Return(model.Reservation{UID: "uid-1", Username: "testuser123"}, nil)

	h := NewLobby(identity, mocks.NewQueueService(t), cm, lg)

	resp, err := h.ReserveIdentity(context.Background(), mustStruct(t, map[string]any{"username": "testuser123"}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"success": true, "username": "testuser123", "uid": "uid-1"}, resp.AsMap())
}

func TestLobby_ReserveIdentity_PassesRawValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  *structpb.Struct
		want any
	}{
		{name: "missing field", req: &structpb.Struct{}, want: nil},
		{name: "nil request", req: nil, want: nil},
		{name: "number", req: &structpb.Struct{Fields: map[string]*structpb.Value{"username": structpb.NewNumberValue(42)}}, want: float64(42)},
		{name: "untrimmed string", req: &structpb.Struct{Fields: map[string]*structpb.Value{"username": structpb.NewStringValue(" padded_name ")}}, want: " padded_name "},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			identity := mocks.NewIdentityService(t)
			cm := mocks.NewContextManager(t)
			cm.On("GetCallerFromContext", mock.Anything).Return(testCaller, true)
			identity.On("ReserveIdentity", mock.Anything, testCaller, tt.want).
				Return(model.Reservation{}, apierrors.NewErrUsernameRules())

			h := NewLobby(identity, mocks.NewQueueService(t), cm, testutil.MakeNoopLogger())

			_, err := h.ReserveIdentity(context.Background(), tt.req)
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.InvalidArgument, st.Code())
			assert.Equal(t, "username rules failed", st.Message())
		})
	}
}

func TestLobby_ReserveIdentity_NoCaller(t *testing.T) {
	t.Parallel()

	identity := mocks.NewIdentityService(t)
	cm := mocks.NewContextManager(t)
	cm.On("GetCallerFromContext", mock.Anything).Return(model.Caller{}, false)
	identity.On("ReserveIdentity", mock.Anything, model.Caller{}, "testuser123").
		Return(model.Reservation{}, apierrors.NewErrUnauthenticated())

	h := NewLobby(identity, mocks.NewQueueService(t), cm, testutil.MakeNoopLogger())

	_, err := h.ReserveIdentity(context.Background(), mustStruct(t, map[string]any{"username": "testuser123"}))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestLobby_JoinQueue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		svcErr   error
		wantCode codes.Code
		wantMsg  string
	}{
		{name: "joined", wantCode: codes.OK},
		{name: "offline", svcErr: apierrors.NewErrUserOffline(), wantCode: codes.FailedPrecondition, wantMsg: "User Not Online"},
		{name: "already waiting", svcErr: apierrors.NewErrAlreadyWaiting(), wantCode: codes.AlreadyExists, wantMsg: "User Already Waiting to be matched"},
		{name: "unclassified", svcErr: errors.New("redis down"), wantCode: codes.Internal, wantMsg: "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			queue := mocks.NewQueueService(t)
			cm := mocks.NewContextManager(t)
			cm.On("GetCallerFromContext", mock.Anything).Return(testCaller, true)
			queue.On("JoinQueue", mock.Anything, testCaller).Return(tt.svcErr)

			h := NewLobby(mocks.NewIdentityService(t), queue, cm, testutil.MakeNoopLogger())

			resp, err := h.JoinQueue(context.Background(), &emptypb.Empty{})
			if tt.wantCode == codes.OK {
				require.NoError(t, err)
				assert.Equal(t, map[string]any{"success": true}, resp.AsMap())
				return
			}
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}

func TestLobby_LeaveQueue(t *testing.T) {
	t.Parallel()

	queue := mocks.NewQueueService(t)
	cm := mocks.NewContextManager(t)
	cm.On("GetCallerFromContext", mock.Anything).Return(testCaller, true)
	queue.On("LeaveQueue", mock.Anything, testCaller).Return(nil)

	h := NewLobby(mocks.NewIdentityService(t), queue, cm, testutil.MakeNoopLogger())

	resp, err := h.LeaveQueue(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"success": true}, resp.AsMap())
}

func TestLobby_LeaveQueue_Unverified(t *testing.T) {
	t.Parallel()

	unverified := model.Caller{ID: "uid-1"}
	queue := mocks.NewQueueService(t)
	cm := mocks.NewContextManager(t)
	cm.On("GetCallerFromContext", mock.Anything).Return(unverified, true)
	queue.On("LeaveQueue", mock.Anything, unverified).Return(apierrors.NewErrEmailNotVerified())

	h := NewLobby(mocks.NewIdentityService(t), queue, cm, testutil.MakeNoopLogger())

	_, err := h.LeaveQueue(context.Background(), &emptypb.Empty{})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, "use a verified email address to continue", st.Message())
}

func TestLobby_FailureLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{name: "expected outcome", err: apierrors.NewErrUserOffline(), wantLevel: "INFO"},
		{name: "unexpected failure", err: errors.New("presence backend down"), wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			lg := logger.NewWithWriter(&buf, 0, true)

			queue := mocks.NewQueueService(t)
			cm := mocks.NewContextManager(t)
			cm.On("GetCallerFromContext", mock.Anything).Return(testCaller, true)
			queue.On("JoinQueue", mock.Anything, testCaller).Return(tt.err)

			h := NewLobby(mocks.NewIdentityService(t), queue, cm, lg)
			_, err := h.JoinQueue(context.Background(), &emptypb.Empty{})
			require.Error(t, err)

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, tt.wantLevel, record["level"])
			assert.Equal(t, "Lobby handler: join queue failed", record["msg"])
		})
	}
}
