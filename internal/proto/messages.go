// Package proto describes the credvault.v1.CredentialService gRPC API: its
// request and response messages, a JSON codec for them, the service
// descriptor and a typed client.
package proto

// Fixed, human-readable outcomes. Internal error text never reaches callers.
const (
	MsgAccountCreated     = "account created"
	MsgIdentityTaken      = "identity already exists"
	MsgInvalidInput       = "invalid identity or password"
	MsgLoginAccepted      = "login successful"
	MsgInvalidCredentials = "invalid login credentials"
	MsgPasswordChanged    = "password changed"
	MsgInternal           = "internal error"
)

type CreateAccountRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type CreateAccountResponse struct {
	Message string `json:"message"`
}

type LoginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
}

type ChangePasswordRequest struct {
	Identity    string `json:"identity"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ChangePasswordResponse struct {
	Message string `json:"message"`
}
