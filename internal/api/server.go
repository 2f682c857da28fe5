// Package api is the HTTP front of the gateway. Each route maps onto one
// sign operation and failures are returned as 400 {"message": "<KIND>"}.
//
//	srv, err := api.New(deps)
//	srv.Start()
//	defer srv.Close(ctx)
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/disersoft-code/traductor-pmv/internal/config"
	"github.com/disersoft-code/traductor-pmv/internal/log"
	"github.com/disersoft-code/traductor-pmv/internal/panel"
)

const gracefulShutdownTimeout = 10 * time.Second

// Gateway is the set of sign operations the API exposes. *panel.Panel
// implements it.
type Gateway interface {
	GetMessage(ctx context.Context, ip string, id int) (*panel.Message, error)
	GetMessages(ctx context.Context, ip string, page, size int) (panel.Page[*panel.Message], error)
	WriteMessage(ctx context.Context, ip string, m panel.MessageWrite) error
	DeleteMessage(ctx context.Context, ip string, id int) error
	ActivateMessage(ctx context.Context, ip string, id int, activate bool) error

	GetFont(ctx context.Context, ip string, id int) (*panel.Font, error)
	GetFonts(ctx context.Context, ip string, page, size int) (panel.Page[*panel.Font], error)

	GetGraphic(ctx context.Context, ip string, id int) (*panel.Graphic, error)
	GetGraphics(ctx context.Context, ip string, page, size int) (panel.Page[*panel.Graphic], error)
	SetGraphic(ctx context.Context, ip string, g panel.GraphicUpload) error

	GetSchedule(ctx context.Context, ip, id string) (*panel.Schedule, error)
	GetSchedules(ctx context.Context, ip string, page, size int) (panel.Page[*panel.Schedule], error)
	SetSchedule(ctx context.Context, ip string, date int64, message int) error
	UpdateSchedule(ctx context.Context, ip, id string, date int64, message int) error
	DeleteSchedule(ctx context.Context, ip, id string) error

	GetStatus(ctx context.Context, ip string) (*panel.SignStatus, error)
	RestartPanel(ctx context.Context, ip string) error
}

// EventPublisher receives the outcome of every write operation.
type EventPublisher interface {
	PublishEvent(op, ip string, err error)
}

type Deps struct {
	Config  config.HTTPConfig
	Logger  *log.Logger
	Gateway Gateway
	Events  EventPublisher // optional
	Version string
}

type Server struct {
	cfg     config.HTTPConfig
	log     *log.Logger
	gw      Gateway
	events  EventPublisher
	version string
	server  *http.Server
}

func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	return &Server{
		cfg:     deps.Config,
		log:     deps.Logger.With("source", "http"),
		gw:      deps.Gateway,
		events:  deps.Events,
		version: deps.Version,
	}, nil
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}

	s.server = &http.Server{
		Handler:      s.buildRouter(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server stopped: %v", err)
		}
	}()

	s.log.Info("HTTP server listening on %s", ln.Addr())
	return nil
}

// Close waits for in-flight requests, up to gracefulShutdownTimeout.
func (s *Server) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, gracefulShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	s.log.Info("HTTP server stopped")
	return nil
}

func (s *Server) event(op, ip string, err error) {
	if s.events != nil {
		s.events.PublishEvent(op, ip, err)
	}
}
