package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/pkg/response"
)

// Plan godoc
// @Summary     Plan a program for a user
// @Description Expands the program into planned activities at local noon in the user's timezone. duration_days wins over duration_weeks; the default horizon is 30 days.
// @Tags        Programs
// @Accept      json
// @Produce     json
// @Param       id   path string  true "Program ID"
// @Param       body body planReq true "User, horizon and start date"
// @Success     200  {object} planResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     404  {object} response.Resp "User or program not found"
// @Failure     422  {object} response.Resp "Malformed program"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/programs/{id}/plan [POST]
func (h *handler) Plan(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processPlanReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.PlanProgramForUser(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.PlanProgramForUser: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newPlanResp(output))
}

// Detail godoc
// @Summary     Get a program
// @Tags        Programs
// @Produce     json
// @Param       id  path string true "Program ID"
// @Success     200 {object} programResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/programs/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.uc.GetProgram(ctx, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "uc.GetProgram: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newProgramResp(p))
}

// ListPlanned godoc
// @Summary     List planned activities
// @Description Returns a user's planned activities in chronological order, optionally filtered by program and date range.
// @Tags        Programs
// @Produce     json
// @Param       user_id    query string true  "User ID"
// @Param       program_id query string false "Program ID"
// @Param       start_date query string false "Range start (epoch ms, YYYY-MM-DD or relative)"
// @Param       end_date   query string false "Range end (epoch ms, YYYY-MM-DD or relative)"
// @Success     200 {object} listPlannedResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/planned [GET]
func (h *handler) ListPlanned(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListPlannedReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	items, err := h.uc.ListPlanned(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListPlanned: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListPlannedResp(items))
}
