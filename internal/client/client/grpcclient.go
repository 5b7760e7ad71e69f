package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/credvault/internal/common"
	pb "github.com/dmitrijs2005/credvault/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.CredentialServiceClient
}

func withRequestID(ctx context.Context) context.Context {
	if md, ok := metadata.FromOutgoingContext(ctx); ok && len(md.Get(common.RequestIDHeaderName)) > 0 {
		return ctx
	}
	id, err := common.MakeRandHexString(8)
	if err != nil {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, common.RequestIDHeaderName, id)
}

func requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withRequestID(ctx), method, req, reply, cc, opts...)
}

// NewGRPCClient prepares a client for endpointURL. The connection is
// established lazily on the first call. timeout bounds every call; zero
// leaves calls bounded only by the caller's context.
func NewGRPCClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	conn, err := grpc.NewClient(c.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(requestIDInterceptor),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewCredentialServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Register(ctx context.Context, identity, password string) error {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	_, err := s.client.CreateAccount(ctx, &pb.CreateAccountRequest{Identity: identity, Password: password})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, identity, password string) error {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	_, err := s.client.Login(ctx, &pb.LoginRequest{Identity: identity, Password: password})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ChangePassword(ctx context.Context, identity, oldPassword, newPassword string) error {
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	_, err := s.client.ChangePassword(ctx, &pb.ChangePasswordRequest{
		Identity:    identity,
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", ErrServer, err)
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.Unauthenticated:
		return ErrInvalidCredentials
	case codes.AlreadyExists:
		return ErrIdentityTaken
	case codes.InvalidArgument:
		return ErrInvalidInput
	default:
		return fmt.Errorf("%w: %s", ErrServer, st.Message())
	}
}
