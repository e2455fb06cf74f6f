// Package discovery advertises the back office on the local network via
// mDNS so register terminals can find it without manual configuration.
package discovery

import (
	"fmt"
	"os"

	"github.com/grandcat/zeroconf"

	"github.com/posdesk/core/internal/infrastructure/logging"
)

const (
	serviceType = "_posdesk._tcp"
	domain      = "local."
)

// Server advertises the HTTP API as an mDNS service.
type Server struct {
	instance string
	port     int
	version  string
	logger   *logging.Logger

	server *zeroconf.Server
}

// NewServer creates an advertiser for the given instance name and port.
// An empty instance falls back to the host name.
func NewServer(instance string, port int, version string, logger *logging.Logger) *Server {
	return &Server{
		instance: instance,
		port:     port,
		version:  version,
		logger:   logger,
	}
}

// Start registers the service on all interfaces. Terminals browse for
// _posdesk._tcp and read the advertised port.
func (s *Server) Start() error {
	instance := s.instance
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("resolving hostname for instance name: %w", err)
		}
		instance = hostname
	}

	server, err := zeroconf.Register(
		instance,
		serviceType,
		domain,
		s.port,
		[]string{"version=" + s.version},
		nil,
	)
	if err != nil {
		return fmt.Errorf("registering mdns service: %w", err)
	}

	s.server = server
	s.logger.Info("mdns advertisement started",
		"instance", instance,
		"service", serviceType,
		"port", s.port,
	)
	return nil
}

// Stop withdraws the advertisement. Safe to call when never started.
func (s *Server) Stop() {
	if s.server == nil {
		return
	}
	s.server.Shutdown()
	s.server = nil
	s.logger.Info("mdns advertisement stopped")
}
