package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/eventbus"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	"github.com/asyncopatedsoul/health-protocol/internal/middleware"
	"github.com/asyncopatedsoul/health-protocol/internal/plan"
	planUC "github.com/asyncopatedsoul/health-protocol/internal/plan/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/pkg/datemath"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Storage
	store        repository.Store
	notes        repository.NoteRepository
	programs     repository.ProgramRepository
	search       repository.SearchRepository
	memosWebhook bool

	// Collaborators
	publisher eventbus.Publisher
	calendar  planUC.Calendar
	dates     *datemath.Parser

	// Domain settings
	importerCfg   importer.Config
	planCfg       plan.Config
	middlewareCfg middleware.Config
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Store backs every domain. Notes overrides it for journal notes (e.g. Memos)
	// and Programs for program definitions (e.g. a YAML directory).
	Store    repository.Store
	Notes    repository.NoteRepository
	Programs repository.ProgramRepository
	// MemosWebhook registers POST /webhook/memos.
	MemosWebhook bool
	// Search is optional; without it the resolver uses substring matching.
	Search repository.SearchRepository

	// Optional collaborators
	Publisher eventbus.Publisher
	Calendar  planUC.Calendar

	// Dates interprets start and end expressions in requests.
	Dates *datemath.Parser

	Importer   importer.Config
	Plan       plan.Config
	Middleware middleware.Config
}

// New creates a new HTTPServer instance with every route registered.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:             logger,
		gin:           gin.New(),
		port:          cfg.Port,
		mode:          cfg.Mode,
		environment:   cfg.Environment,
		store:         cfg.Store,
		notes:         cfg.Notes,
		programs:      cfg.Programs,
		search:        cfg.Search,
		memosWebhook:  cfg.MemosWebhook,
		publisher:     cfg.Publisher,
		calendar:      cfg.Calendar,
		dates:         cfg.Dates,
		importerCfg:   cfg.Importer,
		planCfg:       cfg.Plan,
		middlewareCfg: cfg.Middleware,
	}
	if srv.notes == nil {
		srv.notes = cfg.Store
	}
	if srv.programs == nil {
		srv.programs = cfg.Store
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(context.Background()); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.store == nil {
		return errors.New("store is required")
	}
	if srv.dates == nil {
		return errors.New("date parser is required")
	}
	return nil
}
