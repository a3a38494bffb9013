package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	defTimeout      = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server exposes a registry on /metrics.
type Server struct {
	server   *http.Server
	listener net.Listener
	stopped  atomic.Bool
}

// NewServer builds a metrics server for addr that serves gatherer.
func NewServer(addr string, gatherer prometheus.Gatherer) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{
			Addr:              addr,
			ReadHeaderTimeout: defTimeout,
			WriteTimeout:      defTimeout,
			Handler:           mux,
		},
	}
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) && !s.stopped.Load() {
			slog.Error("Metrics server error", "error", err.Error())
		}
	}()
	slog.Info("Metrics server started", "address", listener.Addr().String())
	return nil
}

// Addr returns the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.server.Addr
	}
	return s.listener.Addr().String()
}

func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.stopped.Store(true)
	return s.server.Shutdown(ctx)
}
