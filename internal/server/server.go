// Package server hosts the JSON-RPC endpoint over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/xykswap/ammrpc/internal/services/rpcapi"
)

// Server serves the amm namespace at / and a health probe at /health.
// Concurrency limiting, timeouts and parameter validation errors all
// belong to this transport layer, not to the API behind it.
type Server struct {
	addr   string
	rpcSrv *rpc.Server
	logger *zap.Logger
}

// New registers the API under the "amm" namespace and returns a
// server ready to start.
func New(addr string, api *rpcapi.API, logger *zap.Logger) (*Server, error) {
	rpcSrv := rpc.NewServer()
	if err := rpcSrv.RegisterName("amm", api); err != nil {
		return nil, pkgerrors.Wrap(err, "register amm namespace")
	}
	return &Server{addr: addr, rpcSrv: rpcSrv, logger: logger}, nil
}

// Handler returns the full HTTP handler, health probe included.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/", s.withRequestID(s.rpcSrv))
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("rpc server listening", zap.String("addr", s.addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}

// withRequestID tags every call with a correlation id so one request
// can be traced through the logs.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("rpc request",
			zap.String("request_id", requestID),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("took", time.Since(start)))
	})
}
