package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	pb "github.com/dmitrijs2005/credvault/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	lastCreateReq *pb.CreateAccountRequest
	lastLoginReq  *pb.LoginRequest
	lastChangeReq *pb.ChangePasswordRequest
	lastDeadline  bool

	err error
}

func (f *fakePB) CreateAccount(ctx context.Context, in *pb.CreateAccountRequest, opts ...grpc.CallOption) (*pb.CreateAccountResponse, error) {
	f.lastCreateReq = in
	_, f.lastDeadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &pb.CreateAccountResponse{Message: pb.MsgAccountCreated}, nil
}

func (f *fakePB) Login(ctx context.Context, in *pb.LoginRequest, opts ...grpc.CallOption) (*pb.LoginResponse, error) {
	f.lastLoginReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &pb.LoginResponse{Message: pb.MsgLoginAccepted}, nil
}

func (f *fakePB) ChangePassword(ctx context.Context, in *pb.ChangePasswordRequest, opts ...grpc.CallOption) (*pb.ChangePasswordResponse, error) {
	f.lastChangeReq = in
	if f.err != nil {
		return nil, f.err
	}
	return &pb.ChangePasswordResponse{Message: pb.MsgPasswordChanged}, nil
}

func newWithFake(f *fakePB) *GRPCClient {
	return &GRPCClient{client: f, timeout: time.Second}
}

func TestGRPCClient_ForwardsRequests(t *testing.T) {
	f := &fakePB{}
	c := newWithFake(f)
	ctx := context.Background()

	require.NoError(t, c.Register(ctx, "alice", "pw-1"))
	assert.Equal(t, &pb.CreateAccountRequest{Identity: "alice", Password: "pw-1"}, f.lastCreateReq)
	assert.True(t, f.lastDeadline, "calls must carry the client timeout")

	require.NoError(t, c.Login(ctx, "alice", "pw-1"))
	assert.Equal(t, "alice", f.lastLoginReq.Identity)

	require.NoError(t, c.ChangePassword(ctx, "alice", "pw-1", "pw-2"))
	assert.Equal(t, &pb.ChangePasswordRequest{Identity: "alice", OldPassword: "pw-1", NewPassword: "pw-2"}, f.lastChangeReq)
}

func TestGRPCClient_MapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unavailable", status.Error(codes.Unavailable, "x"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "x"), ErrUnavailable},
		{"unauthenticated", status.Error(codes.Unauthenticated, pb.MsgInvalidCredentials), ErrInvalidCredentials},
		{"exists", status.Error(codes.AlreadyExists, pb.MsgIdentityTaken), ErrIdentityTaken},
		{"invalid", status.Error(codes.InvalidArgument, pb.MsgInvalidInput), ErrInvalidInput},
		{"internal", status.Error(codes.Internal, pb.MsgInternal), ErrServer},
		{"non-status", errors.New("boom"), ErrServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newWithFake(&fakePB{err: tt.err})
			assert.ErrorIs(t, c.Login(context.Background(), "a", "b"), tt.want)
		})
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := withRequestID(context.Background())
	md, ok := metadata.FromOutgoingContext(ctx)
	require.True(t, ok)
	ids := md.Get(common.RequestIDHeaderName)
	require.Len(t, ids, 1)
	assert.Len(t, ids[0], 16)

	// existing id is kept
	ctx = metadata.AppendToOutgoingContext(context.Background(), common.RequestIDHeaderName, "mine")
	md, _ = metadata.FromOutgoingContext(withRequestID(ctx))
	assert.Equal(t, []string{"mine"}, md.Get(common.RequestIDHeaderName))
}

func TestNewGRPCClient_Close(t *testing.T) {
	c, err := NewGRPCClient("127.0.0.1:1", time.Second)
	require.NoError(t, err)
	require.NoError(t, c.Close())
}
