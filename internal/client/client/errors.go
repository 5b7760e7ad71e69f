package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrIdentityTaken      = errors.New("identity already exists")
	ErrInvalidInput       = errors.New("invalid identity or password")
	ErrServer             = errors.New("server error")
)
