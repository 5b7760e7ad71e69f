package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/common"
	pb "github.com/dmitrijs2005/credvault/internal/proto"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusFromError maps service errors onto gRPC status codes.
func statusFromError(err error) error {
	switch {
	case errors.Is(err, common.ErrDuplicateIdentity):
		return status.Error(codes.AlreadyExists, pb.MsgIdentityTaken)
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, pb.MsgInvalidInput)
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, pb.MsgInvalidCredentials)
	default:
		return status.Error(codes.Internal, pb.MsgInternal)
	}
}

func (s *GRPCServer) CreateAccount(ctx context.Context, req *pb.CreateAccountRequest) (*pb.CreateAccountResponse, error) {

	if err := s.credentials.CreateCredential(ctx, req.Identity, req.Password); err != nil {
		s.logger.Info(ctx, "Account creation refused", "identity", req.Identity, "reason", err.Error())
		return nil, statusFromError(err)
	}

	s.logger.Info(ctx, "Account created", "identity", req.Identity)
	return &pb.CreateAccountResponse{Message: pb.MsgAccountCreated}, nil

}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	if s.credentials.VerifyCredential(ctx, req.Identity, req.Password) != services.Accepted {
		return nil, status.Error(codes.Unauthenticated, pb.MsgInvalidCredentials)
	}

	return &pb.LoginResponse{Message: pb.MsgLoginAccepted}, nil

}

func (s *GRPCServer) ChangePassword(ctx context.Context, req *pb.ChangePasswordRequest) (*pb.ChangePasswordResponse, error) {

	if err := s.credentials.ChangePassword(ctx, req.Identity, req.OldPassword, req.NewPassword); err != nil {
		return nil, statusFromError(err)
	}

	s.logger.Info(ctx, "Password changed", "identity", req.Identity)
	return &pb.ChangePasswordResponse{Message: pb.MsgPasswordChanged}, nil

}
