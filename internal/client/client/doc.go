// Package client talks to the credvault CredentialService over gRPC.
//
// GRPCClient manages the connection, tags every call with a request ID,
// bounds it with a timeout and maps gRPC status codes to the sentinel errors
// ErrUnavailable, ErrInvalidCredentials, ErrIdentityTaken, ErrInvalidInput
// and ErrServer, which callers match with errors.Is.
package client
