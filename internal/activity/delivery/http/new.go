package http

import (
	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

type handler struct {
	l  log.Logger
	uc activity.UseCase
}

// New creates a new HTTP handler for the activity catalog.
func New(l log.Logger, uc activity.UseCase) *handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
