// Package httpapi exposes the credential service over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/credvault/internal/logging"
	"github.com/dmitrijs2005/credvault/internal/server/services"
	"github.com/julienschmidt/httprouter"
)

const (
	maxBodyBytes    = 4 << 10
	shutdownTimeout = 5 * time.Second
)

// Credentials is the part of the credential service exposed over HTTP.
type Credentials interface {
	CreateCredential(ctx context.Context, identity, password string) error
	VerifyCredential(ctx context.Context, identity, password string) services.Outcome
	ChangePassword(ctx context.Context, identity, oldPassword, newPassword string) error
}

type HTTPServer struct {
	address     string
	credentials Credentials
	logger      logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, c Credentials) *HTTPServer {
	return &HTTPServer{
		address:     a,
		logger:      l.With("module", "http_server"),
		credentials: c,
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *HTTPServer) Handler() http.Handler {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		HandleMethodNotAllowed: true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.writeJSON(w, r, messageResponse{Message: "endpoint not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.writeJSON(w, r, messageResponse{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	hr.GET("/health", s.health)
	hr.POST("/create-account", s.createAccount)
	hr.POST("/login", s.login)
	hr.POST("/change-password", s.changePassword)

	return chain(hr, s.recoverer, s.requestID, s.accessLog)
}

func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then shuts down.
func (s *HTTPServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
