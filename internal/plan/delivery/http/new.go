package http

import (
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type handler struct {
	l     log.Logger
	uc    plan.UseCase
	dates *datemath.Parser
}

// New creates a new HTTP handler for programs and planned activities.
func New(l log.Logger, uc plan.UseCase, dates *datemath.Parser) *handler {
	return &handler{
		l:     l,
		uc:    uc,
		dates: dates,
	}
}
