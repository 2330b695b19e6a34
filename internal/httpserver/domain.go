package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/activity"
	activityHTTP "github.com/asyncopatedsoul/health-protocol/internal/activity/delivery/http"
	activityUC "github.com/asyncopatedsoul/health-protocol/internal/activity/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/importer"
	importerHTTP "github.com/asyncopatedsoul/health-protocol/internal/importer/delivery/http"
	importerUC "github.com/asyncopatedsoul/health-protocol/internal/importer/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/middleware"
	planHTTP "github.com/asyncopatedsoul/health-protocol/internal/plan/delivery/http"
	planUC "github.com/asyncopatedsoul/health-protocol/internal/plan/usecase"
	"github.com/asyncopatedsoul/health-protocol/internal/sync"
)

// setupActivityDomain registers /api/v1/activities and returns the resolver for the importer.
//
// Pattern to follow when adding a new domain:
//  1. Create UseCase:      uc := mydomainUC.New(srv.store, srv.l)
//  2. Create HTTP Handler: h := mydomainHTTP.New(srv.l, uc)
//  3. Register Routes:     mydomainHTTP.RegisterRoutes(api, h, mw)
func (srv HTTPServer) setupActivityDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) (activity.UseCase, error) {
	uc := activityUC.New(srv.store, srv.search, srv.l)

	h := activityHTTP.New(srv.l, uc)
	activityHTTP.RegisterRoutes(api, h, mw)

	if srv.search == nil {
		srv.l.Infof(ctx, "Activity domain registered (search disabled, substring matching only)")
	} else {
		srv.l.Infof(ctx, "Activity domain registered")
	}
	return uc, nil
}

// setupImporterDomain registers /api/v1/notes.
func (srv HTTPServer) setupImporterDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware, resolver activity.UseCase) (importer.UseCase, error) {
	uc := importerUC.New(srv.l, srv.notes, srv.store, srv.store, srv.store, resolver, srv.publisher, srv.importerCfg)

	h := importerHTTP.New(srv.l, uc, srv.dates)
	importerHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Importer domain registered")
	return uc, nil
}

// setupPlanDomain registers /api/v1/programs and /api/v1/planned.
func (srv HTTPServer) setupPlanDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	var opts []planUC.Option
	if srv.calendar != nil {
		opts = append(opts, planUC.WithCalendar(srv.calendar))
	}
	uc := planUC.New(srv.l, srv.programs, srv.store, srv.store, srv.store, srv.publisher, srv.planCfg, opts...)

	h := planHTTP.New(srv.l, uc, srv.dates)
	planHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Plan domain registered")
	return nil
}

// setupMemosWebhook registers POST /webhook/memos when notes come from Memos.
func (srv HTTPServer) setupMemosWebhook(ctx context.Context, mw middleware.Middleware, uc importer.UseCase) {
	if !srv.memosWebhook {
		srv.l.Infof(ctx, "Memos not configured, skipping Memos webhook route")
		return
	}

	h := sync.NewWebhookHandler(uc, srv.store, srv.l)
	srv.gin.POST("/webhook/memos", mw.WebhookAuth(), h.HandleMemosWebhook)
	srv.l.Infof(ctx, "Memos webhook route registered at POST /webhook/memos")
}
