// Package server exposes elevation lookups over HTTP.
package server

import (
	log "github.com/go-kit/log"

	dem "github.com/archlabjp/go-dem"
)

// Server serves elevation lookups backed by a dem.Service.
type Server struct {
	service *dem.Service
	logger  log.Logger
}

// New returns a Server.
func New(service *dem.Service, logger log.Logger) *Server {
	return &Server{
		service: service,
		logger:  log.With(logger, "component", "server"),
	}
}
