package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

// Resolve godoc
// @Summary     Resolve an activity name
// @Description Fuzzy-matches a free-text name against the catalog, creating a new activity when nothing scores above the threshold.
// @Tags        Activities
// @Accept      json
// @Produce     json
// @Param       body body resolveReq true "Activity name and optional threshold"
// @Success     200  {object} resolveResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/activities/resolve [POST]
func (h *handler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processResolveReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Resolve(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Resolve: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newResolveResp(output))
}

// Search godoc
// @Summary     Search activities
// @Description Ranks catalog activities with the search service, or falls back to a substring match.
// @Tags        Activities
// @Produce     json
// @Param       q     query string true  "Search text"
// @Param       limit query int    false "Max results (default: 10)"
// @Success     200 {object} searchResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/activities/search [GET]
func (h *handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSearchReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Search(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Search: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSearchResp(output))
}

// SearchStatus godoc
// @Summary     Search index status
// @Description Reports whether the search service is reachable and how many documents it holds.
// @Tags        Activities
// @Produce     json
// @Success     200 {object} searchStatusResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/activities/search/status [GET]
func (h *handler) SearchStatus(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.SearchStatus(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.SearchStatus: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSearchStatusResp(output))
}

// SeedIndex godoc
// @Summary     Seed the search index
// @Description Applies index settings and pushes every catalog activity to the search service.
// @Tags        Activities
// @Produce     json
// @Success     200 {object} seedResp
// @Failure     503 {object} response.Resp "Search service unavailable"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/activities/search/seed [POST]
func (h *handler) SeedIndex(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.SeedIndex(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.SeedIndex: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, seedResp{Indexed: output.Indexed})
}
