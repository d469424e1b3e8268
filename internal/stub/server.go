// Package stub serves a local imitation of the API, so the client and the CLI
// can be used without network access or an API key.
package stub

import (
	"context"
	"net/http"

	"github.com/maxbolgarin/erro"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"
)

// Server is the stub API server
type Server struct {
	config Config
	log    logze.Logger
	server *servex.Server
	h      *handlers
}

// New creates a new stub server
func New(cfg Config) (*Server, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, erro.Wrap(err, "validate config")
	}

	log := logze.With("module", "stub")

	server, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
	)
	if err != nil {
		return nil, erro.Wrap(err, "failed to create server")
	}

	s := &Server{
		config: cfg,
		log:    log,
		server: server,
		h:      newHandlers(cfg.Prefix, log),
	}
	s.h.register(server)

	return s, nil
}

// BaseURL returns the URL clients should be configured with.
func (s *Server) BaseURL() string {
	return "http://" + s.config.Address + s.config.Prefix
}

// Handler returns the router of the server, it serves without binding a port.
func (s *Server) Handler() http.Handler {
	return s.server.Router()
}

// Start starts the stub server
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("stub server started", "base_url", s.BaseURL())
	return s.server.StartHTTP(s.config.Address)
}

// Stop stops the stub server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
