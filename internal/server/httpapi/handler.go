package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/credvault/internal/common"
	pb "github.com/dmitrijs2005/credvault/internal/proto"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"github.com/julienschmidt/httprouter"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, r *http.Request, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error(r.Context(), "Failed to encode response", "path", r.URL.Path, "error", err)
	}
}

// decode reads a JSON body of at most maxBodyBytes into v.
func (s *HTTPServer) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeJSON(w, r, messageResponse{Message: "malformed request body"}, http.StatusBadRequest)
		return false
	}
	return true
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrDuplicateIdentity):
		s.writeJSON(w, r, messageResponse{Message: pb.MsgIdentityTaken}, http.StatusConflict)
	case errors.Is(err, common.ErrorValidation):
		s.writeJSON(w, r, messageResponse{Message: pb.MsgInvalidInput}, http.StatusBadRequest)
	case errors.Is(err, common.ErrorUnauthorized):
		s.writeJSON(w, r, messageResponse{Message: pb.MsgInvalidCredentials}, http.StatusUnauthorized)
	default:
		s.writeJSON(w, r, messageResponse{Message: pb.MsgInternal}, http.StatusInternalServerError)
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.writeJSON(w, r, messageResponse{Message: "ok"}, http.StatusOK)
}

func (s *HTTPServer) createAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req pb.CreateAccountRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.credentials.CreateCredential(r.Context(), req.Identity, req.Password); err != nil {
		s.logger.Info(r.Context(), "Account creation refused", "identity", req.Identity, "reason", err.Error())
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Account created", "identity", req.Identity)
	s.writeJSON(w, r, messageResponse{Message: pb.MsgAccountCreated}, http.StatusCreated)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req pb.LoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	if s.credentials.VerifyCredential(r.Context(), req.Identity, req.Password) != services.Accepted {
		s.writeJSON(w, r, messageResponse{Message: pb.MsgInvalidCredentials}, http.StatusUnauthorized)
		return
	}

	s.writeJSON(w, r, messageResponse{Message: pb.MsgLoginAccepted}, http.StatusOK)
}

func (s *HTTPServer) changePassword(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req pb.ChangePasswordRequest
	if !s.decode(w, r, &req) {
		return
	}

	if err := s.credentials.ChangePassword(r.Context(), req.Identity, req.OldPassword, req.NewPassword); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Password changed", "identity", req.Identity)
	s.writeJSON(w, r, messageResponse{Message: pb.MsgPasswordChanged}, http.StatusOK)
}
