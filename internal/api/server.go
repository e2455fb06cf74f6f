package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/posdesk/core/internal/catalog"
	"github.com/posdesk/core/internal/events"
	"github.com/posdesk/core/internal/ident"
	"github.com/posdesk/core/internal/infrastructure/config"
	"github.com/posdesk/core/internal/infrastructure/logging"
	"github.com/posdesk/core/internal/infrastructure/mqtt"
	"github.com/posdesk/core/internal/staff"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// Allocator produces likely-unique identifiers for new records.
type Allocator interface {
	Allocate(ctx context.Context, ns ident.Namespace) (string, error)
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config      config.ServerConfig
	WS          config.WebSocketConfig
	Logger      *logging.Logger
	StaffRepo   staff.Repository
	CatalogRepo catalog.Repository
	Alloc       Allocator
	MQTT        *mqtt.Client // optional event relay; nil disables it
	Version     string
}

// Server is the HTTP API and WebSocket server for the POS back office.
//
// It manages the HTTP listener, routes, middleware, and the WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg         config.ServerConfig
	wsCfg       config.WebSocketConfig
	logger      *logging.Logger
	staffRepo   staff.Repository
	catalogRepo catalog.Repository
	alloc       Allocator
	mqtt        *mqtt.Client
	version     string

	server *http.Server
	hub    *Hub
	cancel context.CancelFunc
}

// New creates a new API server with the given dependencies.
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.StaffRepo == nil {
		return nil, fmt.Errorf("staff repository is required")
	}
	if deps.CatalogRepo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	if deps.Alloc == nil {
		return nil, fmt.Errorf("identifier allocator is required")
	}

	return &Server{
		cfg:         deps.Config,
		wsCfg:       deps.WS,
		logger:      deps.Logger,
		staffRepo:   deps.StaffRepo,
		catalogRepo: deps.CatalogRepo,
		alloc:       deps.Alloc,
		mqtt:        deps.MQTT,
		version:     deps.Version,
	}, nil
}

// Start creates the WebSocket hub and begins listening for HTTP
// connections in a background goroutine. Stop with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	s.hub = NewHub(s.wsCfg, s.logger)
	go s.hub.Run(srvCtx)

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// Close gracefully shuts down the server, waiting for in-flight requests
// before closing remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}

// Hub exposes the WebSocket hub, available after Start().
func (s *Server) Hub() *Hub {
	return s.hub
}

// maxCreateAttempts bounds retries when an allocated identifier loses the
// race to a concurrent insert. The PRIMARY KEY constraint is the hard
// uniqueness guarantee; the allocator is only likely-unique.
const maxCreateAttempts = 3

// createWithAllocatedID allocates an identifier and runs the insert,
// retrying with a fresh identifier on a primary key collision.
func (s *Server) createWithAllocatedID(ctx context.Context, ns ident.Namespace, create func(id string) error) error {
	var err error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		var id string
		id, err = s.alloc.Allocate(ctx, ns)
		if err != nil {
			return fmt.Errorf("allocating identifier: %w", err)
		}
		err = create(id)
		if !isIDCollision(err) {
			return err
		}
		s.logger.Warn("identifier collision on insert, retrying", "namespace", ns.Prefix(), "attempt", attempt+1)
	}
	return err
}

// publishEvent fans a committed change out to WebSocket sessions and,
// when the relay is configured, to the MQTT broker. Both paths are fire
// and forget; the mutation has already succeeded.
func (s *Server) publishEvent(ev events.ChangeEvent) {
	s.hub.Broadcast(ev)

	if s.mqtt == nil {
		return
	}
	payload := wireMessage{
		Type:      ev.Kind(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data:      ev.Payload,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to marshal relay event", "type", ev.Kind(), "error", err)
		return
	}
	topic := mqtt.EventTopic(string(ev.Entity), string(ev.Op))
	if err := s.mqtt.Publish(topic, data); err != nil {
		s.logger.Debug("mqtt relay publish failed", "topic", topic, "error", err)
	}
}
