package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/credvault/internal/logging"
	pb "github.com/dmitrijs2005/credvault/internal/proto"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"google.golang.org/grpc"
)

// Credentials is the part of the credential service exposed over gRPC.
type Credentials interface {
	CreateCredential(ctx context.Context, identity, password string) error
	VerifyCredential(ctx context.Context, identity, password string) services.Outcome
	ChangePassword(ctx context.Context, identity, oldPassword, newPassword string) error
}

type GRPCServer struct {
	pb.UnimplementedCredentialServiceServer
	address     string
	credentials Credentials
	logger      logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, c Credentials) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		credentials: c,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.recoveryInterceptor,
		s.requestIDInterceptor,
		s.loggingInterceptor,
	))
	pb.RegisterCredentialServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
