package importer

import (
	"log/slog"

	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/messagebus"
	"github.com/Elimiz21/DebugFlow-Complete-sub002/internal/pipeline"
)

// Importer consumes import requests from the message bus, runs the content
// pipeline, and publishes the outcome
type Importer struct {
	pipeline  *pipeline.Pipeline
	publisher messagebus.MessageBusInterface
	log       *slog.Logger
}

// Option configures the Importer
type Option func(*Importer)

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(s *Importer) {
		s.log = log
	}
}

// New creates a new importer with required dependencies and optional configurations
func New(p *pipeline.Pipeline, publisher messagebus.MessageBusInterface, opts ...Option) *Importer {
	s := &Importer{
		pipeline:  p,
		publisher: publisher,
		log:       slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
