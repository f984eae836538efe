// Package server wires the HTTP surface: health check, CORS and the
// websocket upgrade endpoint.
package server

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/calamity-games/party-backend/internal/config"
	"github.com/calamity-games/party-backend/internal/ws"
)

type Server struct {
	cfg     config.Config
	log     *zap.SugaredLogger
	hub     *ws.Hub
	session ws.Session
}

func New(cfg config.Config, log *zap.SugaredLogger, hub *ws.Hub, session ws.Session) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		hub:     hub,
		session: session,
	}
}

// HTTPServer builds the listener. Read/idle timeouts stay generous;
// websocket connections manage their own deadlines.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
