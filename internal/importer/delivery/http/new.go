package http

import (
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type handler struct {
	l     log.Logger
	uc    importer.UseCase
	dates *datemath.Parser
}

// New creates a new HTTP handler for journal notes. dates interprets the start and end
// expressions of bulk imports.
func New(l log.Logger, uc importer.UseCase, dates *datemath.Parser) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		dates: dates,
	}
}
