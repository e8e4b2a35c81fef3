// Package server exposes the viewer WebSocket endpoint over HTTP.
package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/soar/gamepadcam/internal/hub"
)

type Server struct {
	log         *zap.Logger
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	setter      hub.RotationSetter
	addr        string
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, setter hub.RotationSetter, addr string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		log:         log,
		hub:         h,
		broadcaster: b,
		setter:      setter,
		addr:        addr,
	}
	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.setter, s.log))
	mux.HandleFunc("/healthz", handleHealth(s.hub))
	return mux
}

func (s *Server) ListenAndServe() error {
	s.log.Info("HTTP server listening", zap.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
