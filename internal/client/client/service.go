package client

import (
	"context"
)

type Client interface {
	Close() error
	Register(ctx context.Context, identity, password string) error
	Login(ctx context.Context, identity, password string) error
	ChangePassword(ctx context.Context, identity, oldPassword, newPassword string) error
}
